// Package pipeline composes charset resolution and scoped XML cleaning into
// a per-document pass, plus batch fan-out over independent documents.
package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/xmlwash/internal/logger"
	"github.com/jmylchreest/xmlwash/pkg/charset"
	"github.com/jmylchreest/xmlwash/pkg/xmlclean"
)

// Document is one raw input: a display name plus its byte content.
// The bytes are never mutated by the pipeline.
type Document struct {
	Name string
	Data []byte
}

// FileResult is the per-document outcome consumed by the reporting layer.
// Err is set only for malformed XML; decoding never fails.
type FileResult struct {
	Name          string          `json:"name"`
	Content       string          `json:"-"`
	Charset       string          `json:"charset"`
	Modifications int             `json:"modifications"`
	Stats         *xmlclean.Stats `json:"stats,omitempty"`
	Err           error           `json:"-"`
}

// Failed reports whether the document could not be cleaned.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Pipeline runs documents through resolve -> clean.
type Pipeline struct {
	resolver *charset.Resolver
	cleaner  *xmlclean.Cleaner
}

// New creates a Pipeline. A nil resolver resolves without heuristic
// detection; a nil config uses xmlclean.DefaultConfig(). A non-nil config
// that fails validation is rejected here, before any document is touched.
func New(resolver *charset.Resolver, config *xmlclean.Config) (*Pipeline, error) {
	if resolver == nil {
		resolver = charset.NewResolver()
	}
	cleaner, err := xmlclean.New(config)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		resolver: resolver,
		cleaner:  cleaner,
	}, nil
}

// Process runs one document through the pipeline. The cleaner holds no
// per-pass state, so Process is safe to call concurrently for distinct
// documents.
func (p *Pipeline) Process(doc Document) FileResult {
	resolved := p.resolver.Resolve(doc.Data)
	logger.Debug("resolved charset", "name", doc.Name, "charset", resolved.Charset)

	outcome, err := p.cleaner.Clean(resolved.Text)
	if err != nil {
		logger.Warn("cleaning failed", "name", doc.Name, "error", err)
		return FileResult{
			Name:    doc.Name,
			Charset: resolved.Charset,
			Err:     err,
		}
	}

	logger.Debug("cleaned document",
		"name", doc.Name,
		"modifications", outcome.Modifications,
		"duration", outcome.Stats.TotalDuration)

	return FileResult{
		Name:          doc.Name,
		Content:       outcome.Content,
		Charset:       resolved.Charset,
		Modifications: outcome.Modifications,
		Stats:         outcome.Stats,
	}
}

// ProcessAll cleans documents with at most concurrency workers and returns
// results in input order. Documents share no state, so per-document
// failures are captured in the corresponding FileResult rather than
// aborting the batch; only context cancellation stops it early.
func (p *Pipeline) ProcessAll(ctx context.Context, docs []Document, concurrency int) ([]FileResult, error) {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	results := make([]FileResult, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = p.Process(doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
