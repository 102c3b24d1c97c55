// Package main is the entry point for the bvbridged daemon.
// bvbridged runs next to the desktop webview and serves the WebSocket
// command bridge: log tail fetches, log clearing, and app metadata.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/biovault/bvconsole/internal/bridge"
	"github.com/biovault/bvconsole/internal/config"
	"github.com/biovault/bvconsole/internal/logging"
	"github.com/biovault/bvconsole/internal/logview"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	host := flag.String("host", "", "host to listen on (default from config)")
	port := flag.Int("port", 0, "port to listen on (default from config)")
	configFile := flag.String("config", "", "config file (default is $HOME/.config/bvconsole/config.yaml)")
	logLevel := flag.String("log-level", "", "override logging level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "override logging format (json, console)")
	flag.Parse()

	cfg, loader, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *host != "" {
		cfg.Bridge.Host = *host
	}
	if *port > 0 {
		cfg.Bridge.Port = *port
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}

	logging.Init(logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		File:         cfg.Logging.File,
		EnableCaller: cfg.Logging.EnableCaller,
	})
	logger := logging.Component("bvbridged")

	if cfgUsed := loader.ConfigFileUsed(); cfgUsed != "" {
		logger.Debug().Str("config_file", cfgUsed).Msg("loaded config file")
	}

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("built", date).
		Msg("bvbridged starting")

	logPath := cfg.LogPath()
	server := bridge.NewServer()
	bridge.RegisterDesktopCommands(server, version, logview.NewStore(logPath), logview.NewFileSource(logPath))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.BridgeAddr()
	logger.Info().Str("addr", addr).Str("log_path", logPath).Msg("bridge listening")
	if err := server.ListenAndServe(ctx, addr); err != nil {
		logger.Error().Err(err).Msg("bridge failed")
		os.Exit(1)
	}
	logger.Info().Msg("bvbridged stopped")
}

func loadConfig(path string) (*config.Config, *config.Loader, error) {
	loader := config.NewLoader()
	if path != "" {
		loader.SetConfigFile(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}
