package main

import (
	"io"
	"os"

	"github.com/alnah/go-dokufy"
	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/logger"
)

// dotenvFile is loaded from the working directory before DOKUFY_* overrides.
const dotenvFile = ".env"

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// LoadConfig resolves --config. An empty name means built-in defaults.
	LoadConfig func(nameOrPath string) (*config.Config, error)
	// NewDokufy builds the orchestrator for one command run.
	NewDokufy func(cfg *config.Config, log logger.Logger) (*dokufy.Dokufy, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		LoadConfig: loadConfig,
		NewDokufy: func(cfg *config.Config, log logger.Logger) (*dokufy.Dokufy, error) {
			return dokufy.New(dokufy.WithConfig(cfg), dokufy.WithLogger(log))
		},
	}
}

// loadConfig reads the named config (or the defaults) and applies .env and
// DOKUFY_* environment overrides.
func loadConfig(nameOrPath string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if nameOrPath != "" {
		var err error
		if cfg, err = config.LoadConfig(nameOrPath); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg, dotenvFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to stderr. --verbose wins over --log-level.
func (e *Environment) newLogger(f *commonFlags) logger.Logger {
	level := f.logLevel
	if f.verbose {
		level = "debug"
	}
	return logger.NewWriter(e.Stderr, level, f.logFormat)
}
