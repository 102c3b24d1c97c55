package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biovault/bvconsole/internal/ansi"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Convert terminal output with escape sequences to HTML",
		Long:  "render reads terminal output from a file or stdin and emits HTML with inline-styled spans. Unknown escape sequences are stripped.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().Bool("strip", false, "emit plain text with escape sequences removed instead of HTML")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	strip, _ := cmd.Flags().GetBool("strip")
	var out string
	if strip {
		out = ansi.Strip(string(input))
	} else {
		out = ansi.Render(string(input))
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
