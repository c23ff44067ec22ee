package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/xmlwash/internal/archive"
	"github.com/jmylchreest/xmlwash/internal/logger"
	"github.com/jmylchreest/xmlwash/internal/output"
	"github.com/jmylchreest/xmlwash/pkg/charset"
	"github.com/jmylchreest/xmlwash/pkg/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [files...]",
	Short: "Clean XML files and report modification counts",
	Long: `Clean reads each XML file, resolves its encoding, empties the designated
sentinel fields inside every PositionStatus block, and writes the cleaned
document as <name>_cleaned.xml. A file that is not well-formed XML is
reported and skipped; the rest of the batch is still processed.

Examples:
  xmlwash clean export.xml
  xmlwash clean -o cleaned/ --concurrency 8 *.xml
  xmlwash clean --zip --report report.yaml --report-format yaml *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.StringP("output-dir", "o", "", "directory for cleaned files (default: next to input)")
	flags.Bool("zip", false, "package cleaned files into a timestamped zip instead of loose files")
	flags.String("report", "", "write a run report to this file ('-' for stdout)")
	flags.String("report-format", "json", "report format: json, yaml")
	flags.IntP("concurrency", "c", 0, "concurrent documents (0 = number of CPUs)")
	flags.Bool("detect", true, "consult the statistical charset detector when strict decoding fails")
}

func runClean(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	docs, err := loadDocuments(args)
	if err != nil {
		return err
	}
	logInfo("Processing %d file(s)", len(docs))

	var opts []charset.Option
	if detect, _ := cmd.Flags().GetBool("detect"); detect {
		opts = append(opts, charset.WithDetector(charset.NewChardetDetector()))
	}
	p, err := pipeline.New(charset.NewResolver(opts...), nil)
	if err != nil {
		return err
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	started := time.Now()
	results, err := p.ProcessAll(ctx, docs, concurrency)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	var totals pipeline.Totals
	for _, result := range results {
		totals.Add(result)
		if result.Failed() {
			logError("%s: %v", result.Name, result.Err)
			continue
		}
		logInfo("  %s  %s  %d modification(s)  [%s]",
			result.Name,
			humanize.Bytes(uint64(len(result.Content))),
			result.Modifications,
			result.Charset)
	}

	if err := writeOutputs(cmd, results); err != nil {
		return err
	}
	if err := writeReport(cmd, results, &totals); err != nil {
		return err
	}

	summary := totals.Snapshot()
	logInfo("Done in %s: %d file(s) cleaned, %d failed, %d modification(s)",
		time.Since(started).Round(time.Millisecond),
		summary.Files, summary.Failed, summary.Modifications)

	if summary.Files == 0 && summary.Failed > 0 {
		return fmt.Errorf("all %d file(s) failed", summary.Failed)
	}
	return nil
}

// loadDocuments reads every input file up front. Inputs are small
// structured documents, so whole-file buffers are fine.
func loadDocuments(paths []string) ([]pipeline.Document, error) {
	docs := make([]pipeline.Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, pipeline.Document{Name: path, Data: data})
	}
	return docs, nil
}

// writeOutputs writes cleaned content as loose files or a zip archive.
func writeOutputs(cmd *cobra.Command, results []pipeline.FileResult) error {
	zipFlag, _ := cmd.Flags().GetBool("zip")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if zipFlag {
		entries := make([]archive.Entry, 0, len(results))
		for _, result := range results {
			if result.Failed() {
				continue
			}
			entries = append(entries, archive.Entry{
				Name:    archive.CleanedName(filepath.Base(result.Name)),
				Content: result.Content,
			})
		}
		path := filepath.Join(outputDir, archive.DefaultName(time.Now()))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create archive %s: %w", path, err)
		}
		defer f.Close()
		if err := archive.Write(f, entries); err != nil {
			return err
		}
		logInfo("Wrote %d file(s) to %s", len(entries), path)
		return nil
	}

	for _, result := range results {
		if result.Failed() {
			continue
		}
		name := archive.CleanedName(filepath.Base(result.Name))
		dir := outputDir
		if dir == "" {
			dir = filepath.Dir(result.Name)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(result.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// writeReport exports the run report when --report is set.
func writeReport(cmd *cobra.Command, results []pipeline.FileResult, totals *pipeline.Totals) error {
	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath == "" {
		return nil
	}
	format, _ := cmd.Flags().GetString("report-format")

	report := output.Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Files:       make([]output.FileReport, 0, len(results)),
	}
	for _, result := range results {
		entry := output.FileReport{
			Name:          result.Name,
			Charset:       result.Charset,
			Modifications: result.Modifications,
		}
		if result.Stats != nil {
			entry.DurationMs = result.Stats.TotalDuration.Milliseconds()
		}
		if result.Failed() {
			entry.Error = result.Err.Error()
		}
		report.Files = append(report.Files, entry)
	}
	summary := totals.Snapshot()
	report.TotalFiles = summary.Files
	report.TotalFailed = summary.Failed
	report.TotalModifications = summary.Modifications

	dest := os.Stdout
	if reportPath != "-" {
		f, err := os.Create(reportPath)
		if err != nil {
			return fmt.Errorf("create report %s: %w", reportPath, err)
		}
		defer f.Close()
		dest = f
	}

	w, err := output.NewWriter(dest, output.Format(format))
	if err != nil {
		return err
	}
	if err := w.Write(report); err != nil {
		return err
	}
	return w.Flush()
}
