package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"relviz-backend/service"

	"github.com/spf13/cobra"
)

var (
	outDir       string
	exportPrefix string
)

// exportCmd writes the workbook for a relation analysis
var exportCmd = &cobra.Command{
	Use:   "export <file|->",
	Short: "Export a relation analysis to an Excel workbook",
	Long: `Export flattens every relation and writes one workbook with five sheets:
rights, duties, goals, objects and subjects. The file is named
<prefix>_<YYYYMMDD_HHMMSS>.xlsx.

Example:
  relviz export analysis.json
  relviz export analysis.json --out-dir ./reports --prefix contract_42`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&outDir, "out-dir", ".", "output directory")
	exportCmd.Flags().StringVar(&exportPrefix, "prefix", "", "filename prefix (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	prefix := cfg.Export.FilenamePrefix
	if exportPrefix != "" {
		prefix = exportPrefix
	}

	file, err := service.NewReportService(service.WithFilenamePrefix(prefix)).BuildExport(raw)
	if err != nil {
		return describeError(err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(outDir, file.Filename)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d rights, %d duties, %d goals, %d objects, %d subjects)\n",
		path, file.Totals.Rights, file.Totals.Duties, file.Totals.Goals, file.Totals.Objects, file.Totals.Subjects)
	return nil
}

// describeError prefixes pipeline errors the way the web form reports them
func describeError(err error) error {
	switch {
	case errors.Is(err, service.ErrMalformedInput):
		return fmt.Errorf("invalid JSON: %w", err)
	case errors.Is(err, service.ErrProcessing):
		return fmt.Errorf("processing failed: %w", err)
	default:
		return err
	}
}
