// Package cli implements the undangan command line: serving the invitation,
// previewing it in a terminal and managing stored sessions.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sulaimaniyah/undangan/internal/config"
	"github.com/sulaimaniyah/undangan/internal/logging"
)

// Options are the global flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
	Debug      bool
}

// LoadConfig reads the config file and applies flag overrides on top.
func LoadConfig(opts Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if opts.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// CreateLogger configures the application logger from cfg.
// It writes to Stderr to keep Stdout free for command output.
func CreateLogger(cfg config.LogConfig) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.Format)), nil
}
