package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"workbook-merger/core/config"
	"workbook-merger/core/logger"
	"workbook-merger/core/quality"
	"workbook-merger/core/workbook"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for check command
	checkDir      string
	checkColumn   string
	checkNoHeader bool
)

// checkCmd scans workbooks for duplicate values in one column before a
// merge is attempted.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check workbooks for duplicate values in a column",
	Long: `Check every .xlsx workbook in a directory for duplicate values
in one column, across all files. Useful to vet key columns before a
merge.

Examples:
  # Find duplicate IDs across all workbooks in ./reports
  check --dir ./reports --column ID`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDir, "dir", ".", "Directory of .xlsx workbooks to scan")
	checkCmd.Flags().StringVar(&checkColumn, "column", "", "Column header to scan (default: second column)")
	checkCmd.Flags().BoolVar(&checkNoHeader, "no-header", false, "Treat the first row as data, not headers")

	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	entries, err := os.ReadDir(checkDir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", checkDir, err)
	}

	opts := workbook.DefaultDecodeOptions()
	opts.HeaderRow = !checkNoHeader

	var cells []workbook.CellValue
	scanned := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(checkDir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		sheets, err := workbook.Decode(name, data, opts)
		if err != nil {
			l.Warn("Skipping unreadable workbook", zap.String("file", name), zap.Error(err))
			continue
		}
		for _, sheet := range sheets {
			idx := columnIndex(sheet.Headers, checkColumn)
			if idx < 0 {
				l.Warn("Column not found, skipping sheet",
					zap.String("sheet", sheet.Label()),
					zap.String("column", checkColumn))
				continue
			}
			for _, row := range sheet.Rows {
				if v := row.Cell(idx); !v.IsEmpty() {
					cells = append(cells, v)
				}
			}
		}
		scanned++
	}

	if scanned == 0 {
		return fmt.Errorf("no .xlsx workbooks found in %s", checkDir)
	}

	dups := quality.DuplicateValues(cells)
	sort.Strings(dups)
	if len(dups) == 0 {
		l.Info("No duplicates found",
			zap.Int("files", scanned), zap.Int("values", len(cells)))
		return nil
	}
	l.Warn("Duplicate values found",
		zap.Int("files", scanned), zap.Int("count", len(dups)))
	for _, v := range dups {
		fmt.Println(v)
	}
	return nil
}

// columnIndex resolves the column to scan: by header name when given,
// otherwise the second column, where contributor workbooks keep their
// identifier.
func columnIndex(headers []string, column string) int {
	if column == "" {
		if len(headers) < 2 {
			return -1
		}
		return 1
	}
	want := strings.ToLower(strings.TrimSpace(column))
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == want {
			return i
		}
	}
	return -1
}
