package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/biovault/bvconsole/internal/ansi"
	"github.com/biovault/bvconsole/internal/bridge"
	"github.com/biovault/bvconsole/internal/logtui"
	"github.com/biovault/bvconsole/internal/logview"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the desktop log tail",
		Long:  "logs prints the tail of the desktop log. With --follow it opens an interactive viewer that polls for new lines.",
		RunE:  runLogs,
	}
	cmd.Flags().Bool("follow", false, "open the interactive log viewer")
	cmd.Flags().Bool("html", false, "emit the tail as HTML instead of plain text")
	cmd.Flags().Bool("verbose", false, "include DEBUG/TRACE lines")
	cmd.Flags().Int64("max-bytes", 0, "limit how much of the tail is fetched (default from config)")
	cmd.PersistentFlags().Bool("bridge", false, "talk to the command bridge instead of the local file")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Truncate the desktop log",
		RunE:  runLogsClear,
	})
	return cmd
}

func runLogs(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	source, closeSource, err := logSource(cmd, rt)
	if err != nil {
		return err
	}
	defer closeSource()

	maxBytes, _ := cmd.Flags().GetInt64("max-bytes")
	if maxBytes <= 0 {
		maxBytes = rt.cfg.Logs.MaxBytes
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	verbose = verbose || rt.cfg.Logs.ShowVerbose

	if follow, _ := cmd.Flags().GetBool("follow"); follow {
		return logtui.Run(source, logtui.Config{
			Title:        rt.cfg.LogPath(),
			PollInterval: rt.cfg.Logs.PollInterval,
			MaxBytes:     maxBytes,
			ShowVerbose:  verbose,
		})
	}

	if html, _ := cmd.Flags().GetBool("html"); html {
		viewer := logview.NewViewer(source, logview.Options{
			MaxBytes:    maxBytes,
			ShowVerbose: verbose,
		}, nil)
		rendered, err := viewer.RenderOnce(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	}

	text, err := source.FetchLogText(cmd.Context(), maxBytes)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ansi.Strip(logview.FilterVerbose(text, verbose)))
	return nil
}

func runLogsClear(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if useBridge, _ := cmd.Flags().GetBool("bridge"); useBridge {
		client, err := bridge.Dial(cmd.Context(), rt.cfg.BridgeURL(), rt.cfg.Bridge.InvokeTimeout)
		if err != nil {
			return fmt.Errorf("dial bridge: %w", err)
		}
		defer client.Close()
		_, err = client.Invoke(cmd.Context(), "clear_desktop_logs", nil)
		return err
	}
	return logview.NewStore(rt.cfg.LogPath()).Clear()
}

// logSource picks between the local log file and the command bridge. The
// returned close func is a no-op for the file source.
func logSource(cmd *cobra.Command, rt *runtime) (logview.Source, func(), error) {
	if useBridge, _ := cmd.Flags().GetBool("bridge"); useBridge {
		client, err := bridge.Dial(cmd.Context(), rt.cfg.BridgeURL(), rt.cfg.Bridge.InvokeTimeout)
		if err != nil {
			return nil, nil, fmt.Errorf("dial bridge: %w", err)
		}
		return bridge.NewLogSource(client), func() { _ = client.Close() }, nil
	}
	return logview.NewFileSource(rt.cfg.LogPath()), func() {}, nil
}
