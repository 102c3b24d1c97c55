// Package cli implements the bvconsole command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/biovault/bvconsole/internal/config"
	"github.com/biovault/bvconsole/internal/logging"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bvconsole",
		Short:         "BioVault desktop console tools",
		Long:          "bvconsole renders terminal output as HTML, tails the desktop log, formats SQL, and runs the desktop command bridge.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}
	cmd.PersistentFlags().String("config", "", "config file (default is $HOME/.config/bvconsole/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "override logging level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "override logging format (json, console)")

	cmd.AddCommand(
		newRenderCmd(),
		newLogsCmd(),
		newSQLCmd(),
		newServeCmd(),
	)

	return cmd
}

type runtime struct {
	cfg    *config.Config
	loader *config.Loader
}

// loadRuntime loads config and initializes logging for commands that need
// them. Text-transform commands skip it.
func loadRuntime(cmd *cobra.Command) (*runtime, error) {
	configFile, _ := cmd.Flags().GetString("config")

	loader := config.NewLoader()
	if configFile != "" {
		loader.SetConfigFile(configFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Logging.Format = format
	} else if !term.IsTerminal(int(os.Stderr.Fd())) {
		// Piped output gets machine-readable logs.
		cfg.Logging.Format = "json"
	}

	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		File:         cfg.Logging.File,
		EnableCaller: cfg.Logging.EnableCaller,
	})

	return &runtime{cfg: cfg, loader: loader}, nil
}

// readInput reads the named file, or stdin when no file (or "-") is given.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}
