// Package config handles bvconsole configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure for bvconsole.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// Bridge settings for the desktop command bridge.
	Bridge BridgeConfig `yaml:"bridge" mapstructure:"bridge"`

	// Logs settings for the desktop log viewer.
	Logs LogsConfig `yaml:"logs" mapstructure:"logs"`
}

// GlobalConfig contains global settings.
type GlobalConfig struct {
	// HomeDir is the BioVault home directory (default: $BIOVAULT_HOME,
	// falling back to ~/BioVault).
	HomeDir string `yaml:"home_dir" mapstructure:"home_dir"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// BridgeConfig contains command bridge settings.
type BridgeConfig struct {
	// Host the bridge listens on. The bridge serves the local webview only.
	Host string `yaml:"host" mapstructure:"host"`

	// Port the bridge listens on.
	Port int `yaml:"port" mapstructure:"port"`

	// InvokeTimeout bounds a single command invocation from the client side.
	InvokeTimeout time.Duration `yaml:"invoke_timeout" mapstructure:"invoke_timeout"`
}

// LogsConfig contains desktop log viewer settings.
type LogsConfig struct {
	// Path is the desktop log file (default: <home>/logs/desktop.log).
	Path string `yaml:"path" mapstructure:"path"`

	// MaxBytes limits how much of the log tail is fetched per refresh.
	MaxBytes int64 `yaml:"max_bytes" mapstructure:"max_bytes"`

	// PollInterval is how often the viewer refreshes.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// ShowVerbose includes DEBUG/TRACE lines in the rendered output.
	ShowVerbose bool `yaml:"show_verbose" mapstructure:"show_verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			HomeDir: defaultHomeDir(),
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		Bridge: BridgeConfig{
			Host:          "127.0.0.1",
			Port:          9173,
			InvokeTimeout: 10 * time.Second,
		},
		Logs: LogsConfig{
			Path:         "", // resolved against HomeDir when empty
			MaxBytes:     512 * 1024,
			PollInterval: 2 * time.Second,
			ShowVerbose:  false,
		},
	}
}

// defaultHomeDir mirrors the desktop app: $BIOVAULT_HOME wins, otherwise
// ~/BioVault.
func defaultHomeDir() string {
	if home := os.Getenv("BIOVAULT_HOME"); home != "" {
		return home
	}
	userHome, _ := os.UserHomeDir()
	return filepath.Join(userHome, "BioVault")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Bridge.Port < 1 || c.Bridge.Port > 65535 {
		return fmt.Errorf("bridge.port must be in 1-65535")
	}
	if c.Bridge.InvokeTimeout < 100*time.Millisecond {
		return fmt.Errorf("bridge.invoke_timeout must be at least 100ms")
	}
	if c.Logs.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("logs.poll_interval must be at least 100ms")
	}
	if c.Logs.MaxBytes < 1024 {
		return fmt.Errorf("logs.max_bytes must be at least 1024")
	}
	return nil
}

// LogPath returns the desktop log file path, resolving the default against
// the home directory.
func (c *Config) LogPath() string {
	if c.Logs.Path != "" {
		return c.Logs.Path
	}
	return filepath.Join(c.Global.HomeDir, "logs", "desktop.log")
}

// BridgeAddr returns the host:port the bridge listens on.
func (c *Config) BridgeAddr() string {
	return fmt.Sprintf("%s:%d", c.Bridge.Host, c.Bridge.Port)
}

// BridgeURL returns the ws:// URL clients dial.
func (c *Config) BridgeURL() string {
	return fmt.Sprintf("ws://%s:%d", c.Bridge.Host, c.Bridge.Port)
}
