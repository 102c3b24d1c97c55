package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biovault/bvconsole/internal/sqlhl"
)

func newSQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Format and highlight SQL queries",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "format [file]",
			Short: "Normalize a query: uppercase keywords, one clause per line",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runSQLFormat,
		},
		&cobra.Command{
			Use:   "highlight [file]",
			Short: "Emit the query as HTML with syntax-colored spans",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runSQLHighlight,
		},
	)
	return cmd
}

func runSQLFormat(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sqlhl.Format(string(input)))
	return nil
}

func runSQLHighlight(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), sqlhl.Highlight(string(input)))
	return nil
}
