package cli

import (
	"fmt"

	"relviz-backend/render"
	"relviz-backend/service"

	"github.com/spf13/cobra"
)

var renderWidth int

// renderCmd prints the relation report to the terminal
var renderCmd = &cobra.Command{
	Use:   "render <file|->",
	Short: "Render a relation analysis as a terminal report",
	Long: `Render parses a JSON array of relations and prints one block per relation:
source, text fragment, goals, objects and subjects side by side, and the
rights and duties tables.

Example:
  relviz render analysis.json
  cat analysis.json | relviz render - --width 140`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().IntVar(&renderWidth, "width", 120, "report width in columns")
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	analysis, err := service.NewReportService().Analyze(raw)
	if err != nil {
		return describeError(err)
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Parsed %d relations\n", len(analysis.Relations))
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Terminal(analysis.Report, renderWidth))
	return nil
}
