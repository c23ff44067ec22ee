package xmlclean

import (
	"regexp"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
)

// Cleaner clears sentinel values from the scoped blocks of XML documents.
// A Cleaner holds no per-pass state, so one instance may clean distinct
// documents concurrently.
type Cleaner struct {
	config *Config
}

// New creates a new Cleaner. If config is nil, DefaultConfig() is used;
// a non-nil config must pass Validate.
func New(config *Config) (*Cleaner, error) {
	if config == nil {
		config = DefaultConfig()
	} else if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Cleaner{
		config: config,
	}, nil
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "xmlclean"
}

// Outcome is the terminal result of one successful cleaning pass.
type Outcome struct {
	// Content is the re-serialized document.
	Content string `json:"content"`

	// Modifications counts the designated fields that matched a sentinel
	// and were emptied.
	Modifications int `json:"modifications"`

	// Stats contains metrics about the pass.
	Stats *Stats `json:"stats"`
}

// Clean parses text, empties every designated field whose text equals its
// sentinel inside every container block, and re-serializes. Malformed
// input returns a *ParseError with no content and no mutation. Cleaning is
// idempotent: emptied fields can never match a non-empty sentinel again.
func (c *Cleaner) Clean(text string) (*Outcome, error) {
	start := time.Now()
	stats := NewStats()
	stats.InputBytes = len(text)

	parseStart := time.Now()
	parseText, declared := neutralizeDeclaredCharset(text)
	doc, err := xmlquery.Parse(strings.NewReader(parseText))
	stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if declared != "" {
		restoreDeclaredCharset(doc, declared)
	}
	if !hasDeclaration(text) {
		dropSynthesizedDeclaration(doc)
	}

	mutateStart := time.Now()
	modifications := c.mutate(doc, stats)
	stats.MutateDuration = time.Since(mutateStart)

	serializeStart := time.Now()
	content := doc.OutputXML(true)
	stats.SerializeDuration = time.Since(serializeStart)

	stats.OutputBytes = len(content)
	stats.TotalDuration = time.Since(start)

	return &Outcome{
		Content:       content,
		Modifications: modifications,
		Stats:         stats,
	}, nil
}

// mutate visits every container block in document order and applies the
// field rules. Blocks are independent: each rule clears at most one direct
// child per block, so a block matching both default rules contributes 2.
func (c *Cleaner) mutate(doc *xmlquery.Node, stats *Stats) int {
	modifications := 0
	walk(doc, func(n *xmlquery.Node) {
		if n.Data != c.config.Container {
			return
		}
		stats.Blocks++
		for _, rule := range c.config.Rules {
			field := directChild(n, rule.Field)
			if field == nil {
				continue
			}
			if field.InnerText() != rule.Sentinel {
				continue
			}
			clearText(field)
			stats.RecordClear(rule.Field)
			modifications++
		}
	})
	return modifications
}

// declCharset matches the encoding pseudo-attribute inside an XML
// declaration at the start of the text. [^?]* keeps the match inside the
// declaration itself.
var declCharset = regexp.MustCompile(`^(<\?xml[^?]*encoding=["'])([A-Za-z][A-Za-z0-9._-]*)["']`)

// neutralizeDeclaredCharset rewrites a declared non-UTF-8 charset to UTF-8
// in the text handed to the parser and returns the original name. Clean's
// input is text by contract: the prologue's charset describes the original
// bytes, and without this the parser's charset reader would re-decode an
// already-decoded string, mangling every non-ASCII character.
func neutralizeDeclaredCharset(text string) (string, string) {
	m := declCharset.FindStringSubmatchIndex(text)
	if m == nil {
		return text, ""
	}
	name := text[m[4]:m[5]]
	if strings.EqualFold(name, "UTF-8") {
		return text, ""
	}
	return text[:m[4]] + "UTF-8" + text[m[5]:], name
}

// restoreDeclaredCharset puts the original charset name back on the parsed
// declaration so serialization preserves the prologue as written.
func restoreDeclaredCharset(doc *xmlquery.Node, name string) {
	decl := doc.FirstChild
	if decl == nil || decl.Type != xmlquery.DeclarationNode {
		return
	}
	for i, attr := range decl.Attr {
		if attr.Name.Local == "encoding" {
			decl.Attr[i].Value = name
			return
		}
	}
}

// hasDeclaration reports whether text starts with an XML declaration
// (allowing for a byte order mark).
func hasDeclaration(text string) bool {
	return strings.HasPrefix(strings.TrimPrefix(text, "\uFEFF"), "<?xml")
}

// dropSynthesizedDeclaration removes the declaration node the parser
// invents for documents that had none, so untouched content round-trips
// byte for byte.
func dropSynthesizedDeclaration(doc *xmlquery.Node) {
	decl := doc.FirstChild
	if decl == nil || decl.Type != xmlquery.DeclarationNode {
		return
	}
	doc.FirstChild = decl.NextSibling
	if decl.NextSibling != nil {
		decl.NextSibling.PrevSibling = nil
	} else {
		doc.LastChild = nil
	}
}

// walk visits every element under n in document order. Node.Data carries
// the local part of the tag name (the prefix is stored separately), so
// callers match prefixed and bare tags alike.
func walk(n *xmlquery.Node, fn func(*xmlquery.Node)) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			fn(child)
		}
		walk(child, fn)
	}
}

// directChild returns the first direct child element of n whose local
// name equals local, or nil.
func directChild(n *xmlquery.Node, local string) *xmlquery.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == local {
			return child
		}
	}
	return nil
}

// clearText detaches every child of n, leaving an empty element that
// serializes as <tag></tag>.
func clearText(n *xmlquery.Node) {
	n.FirstChild = nil
	n.LastChild = nil
}
