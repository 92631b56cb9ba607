package cli

import (
	"fmt"
	"os"

	"relviz-backend/workbook"

	"github.com/spf13/cobra"
)

// inspectCmd reports row counts of an exported workbook
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.xlsx>",
	Short: "Show per-sheet row counts of an exported workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		counts, err := workbook.CountRows(f)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, sheet := range workbook.SheetOrder {
			n, ok := counts[sheet]
			if !ok {
				fmt.Fprintf(out, "  %-20s missing\n", sheet)
				continue
			}
			fmt.Fprintf(out, "  %-20s %d\n", sheet, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
