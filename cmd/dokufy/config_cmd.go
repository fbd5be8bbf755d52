package main

import (
	"fmt"

	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, after the config
// file, .env and DOKUFY_* overrides are applied. --env lists the variables.
func runConfig(args []string, env *Environment) error {
	f, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if f.env {
		for _, key := range config.EnvKeys() {
			fmt.Fprintln(env.Stdout, key)
		}
		return nil
	}

	cfg, err := env.LoadConfig(f.common.config)
	if err != nil {
		return err
	}
	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
