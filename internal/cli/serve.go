package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/biovault/bvconsole/internal/bridge"
	"github.com/biovault/bvconsole/internal/logging"
	"github.com/biovault/bvconsole/internal/logview"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the desktop command bridge",
		Long:  "serve starts the WebSocket command bridge the desktop webview invokes commands through.",
		RunE:  runServe,
	}
	cmd.Flags().String("host", "", "host to listen on (default from config)")
	cmd.Flags().Int("port", 0, "port to listen on (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		rt.cfg.Bridge.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		rt.cfg.Bridge.Port = port
	}

	logger := logging.Component("bridge")
	if cfgUsed := rt.loader.ConfigFileUsed(); cfgUsed != "" {
		logger.Debug().Str("config_file", cfgUsed).Msg("loaded config file")
	}

	logPath := rt.cfg.LogPath()
	store := logview.NewStore(logPath)
	source := logview.NewFileSource(logPath)

	server := bridge.NewServer()
	bridge.RegisterDesktopCommands(server, cmd.Root().Version, store, source)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := rt.cfg.BridgeAddr()
	logger.Info().Str("addr", addr).Str("log_path", logPath).Msg("bridge listening")
	if err := server.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	logger.Info().Msg("bridge stopped")
	return nil
}
