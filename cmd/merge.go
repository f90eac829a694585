package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"workbook-merger/core/config"
	"workbook-merger/core/logger"
	"workbook-merger/core/merge"
	"workbook-merger/core/quality"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for merge command
	mergeDir          string
	mergeOut          string
	mergeKeys         []string
	mergePolicy       string
	mergeOrder        string
	mergeNoHeader     bool
	mergeSourceColumn bool
	mergeSheets       []string
	mergeOptionsFile  string
	mergeQualityFile  string
)

// mergeCmd merges workbooks from the command line.
var mergeCmd = &cobra.Command{
	Use:   "merge [files...]",
	Short: "Merge .xlsx workbooks into a single output workbook",
	Long: `Merge .xlsx workbooks into one single-sheet workbook.

Columns are aligned by header name, rows are reconciled by the key
columns, and every conflict, duplicate and schema mismatch is reported.

Examples:
  # Merge two files by the ID column
  merge --key ID --out merged.xlsx a.xlsx b.xlsx

  # Merge every .xlsx in a folder, last upload wins
  merge --dir ./reports --key ID --policy last_wins --out merged.xlsx

  # Reuse a saved configuration
  merge --options merge.json --out merged.xlsx a.xlsx b.xlsx`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeDir, "dir", "", "Merge every .xlsx workbook in this directory")
	mergeCmd.Flags().StringVar(&mergeOut, "out", "merged.xlsx", "Output workbook path")
	mergeCmd.Flags().StringArrayVar(&mergeKeys, "key", nil, "Key column identifying a logical row (repeatable)")
	mergeCmd.Flags().StringVar(&mergePolicy, "policy", "", "Conflict policy: first_wins, last_wins or prefer_non_empty")
	mergeCmd.Flags().StringVar(&mergeOrder, "order", "", "Source order: as_supplied, by_name or by_last_word")
	mergeCmd.Flags().BoolVar(&mergeNoHeader, "no-header", false, "Treat the first row as data, not headers")
	mergeCmd.Flags().BoolVar(&mergeSourceColumn, "source-column", false, "Prepend a column naming each row's source workbook")
	mergeCmd.Flags().StringArrayVar(&mergeSheets, "sheet", nil, "Only read these sheets (repeatable, default all)")
	mergeCmd.Flags().StringVar(&mergeOptionsFile, "options", "", "Load merge options from a JSON file")
	mergeCmd.Flags().StringVar(&mergeQualityFile, "quality", "", "Validate merged rows against this quality schema JSON")

	RootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	opts, err := mergeCLIOptions(cfg)
	if err != nil {
		return err
	}

	paths, err := collectWorkbooks(args)
	if err != nil {
		return err
	}
	sources := make([]merge.Source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		sources = append(sources, merge.Source{Name: filepath.Base(p), Data: data})
	}

	engine := merge.NewEngine(l)
	result, err := engine.Merge(context.Background(), sources, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(mergeOut, result.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", mergeOut, err)
	}

	sum := result.Report.Summary
	l.Info("Merge complete",
		zap.String("output", mergeOut),
		zap.Int("sources", sum.Sources),
		zap.Int("rows_in", sum.RowsIn),
		zap.Int("rows_out", sum.RowsOut),
		zap.Int("conflicts", sum.Conflicts),
		zap.Int("duplicates", sum.Duplicates),
		zap.Int("unmatched_columns", sum.UnmatchedColumns),
		zap.Int("quality_violations", sum.QualityViolations),
	)
	for _, issue := range result.Report.Issues {
		l.Warn("Merge issue",
			zap.String("kind", string(issue.Kind)),
			zap.String("source", issue.Source),
			zap.String("column", issue.Column),
			zap.Int("row", issue.Row),
			zap.String("detail", issue.Message),
		)
	}
	return nil
}

// mergeCLIOptions layers the option sources: configured defaults, then
// the --options file, then individual flags.
func mergeCLIOptions(cfg *config.Config) (merge.Options, error) {
	opts, err := cfg.Merge.Options()
	if err != nil {
		return merge.Options{}, err
	}

	if mergeOptionsFile != "" {
		f, err := os.Open(mergeOptionsFile)
		if err != nil {
			return merge.Options{}, fmt.Errorf("open options file: %w", err)
		}
		defer f.Close()
		opts, err = merge.LoadOptions(f)
		if err != nil {
			return merge.Options{}, err
		}
	}

	if len(mergeKeys) > 0 {
		opts.KeyColumns = mergeKeys
	}
	if len(mergeSheets) > 0 {
		opts.Sheets = mergeSheets
	}
	if mergePolicy != "" {
		p, err := merge.ParsePolicy(mergePolicy)
		if err != nil {
			return merge.Options{}, err
		}
		opts.Policy = p
	}
	if mergeOrder != "" {
		o, err := merge.ParseSourceOrder(mergeOrder)
		if err != nil {
			return merge.Options{}, err
		}
		opts.Order = o
	}
	if mergeNoHeader {
		opts.HeaderRow = false
	}
	if mergeSourceColumn {
		opts.SourceColumn = true
	}

	if mergeQualityFile != "" {
		f, err := os.Open(mergeQualityFile)
		if err != nil {
			return merge.Options{}, fmt.Errorf("open quality schema: %w", err)
		}
		defer f.Close()
		schema, err := quality.LoadSchema(f)
		if err != nil {
			return merge.Options{}, err
		}
		opts.Quality = schema
	}
	return opts, nil
}

// collectWorkbooks resolves the input set from positional arguments
// and the --dir flag. Directory entries are sorted by name so runs are
// reproducible.
func collectWorkbooks(args []string) ([]string, error) {
	paths := append([]string(nil), args...)

	if mergeDir != "" {
		entries, err := os.ReadDir(mergeDir)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", mergeDir, err)
		}
		var found []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
				continue
			}
			// Office lock files start with ~$ and are not workbooks.
			if strings.HasPrefix(name, "~$") {
				continue
			}
			found = append(found, filepath.Join(mergeDir, name))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no input workbooks: pass files or --dir")
	}
	return paths, nil
}
