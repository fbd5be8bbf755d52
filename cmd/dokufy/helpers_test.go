package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-dokufy"
	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/logger"
)

// fileDriver writes its input, prefixed, to the output path.
type fileDriver struct {
	name      string
	available bool
}

func (f fileDriver) Name() string                  { return f.name }
func (f fileDriver) Config() dokufy.DriverSettings { return dokufy.DriverSettings{} }
func (f fileDriver) Supports() []dokufy.Format {
	return []dokufy.Format{dokufy.FormatHTML, dokufy.FormatDocx}
}
func (f fileDriver) IsAvailable(context.Context) bool { return f.available }
func (f fileDriver) write(path, content string) (string, error) {
	return path, os.WriteFile(path, []byte(content), 0o644)
}

func (f fileDriver) HTMLToPDF(_ context.Context, html, out string) (string, error) {
	return f.write(out, "%PDF-"+html)
}

func (f fileDriver) DocxToPDF(_ context.Context, src, out string) (string, error) {
	return f.write(out, "%PDF-"+filepath.Base(src))
}

func (f fileDriver) HTMLToDocx(_ context.Context, html, out string) (string, error) {
	return f.write(out, "docx:"+html)
}

type testEnv struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv registers "file" (available, default), "offline" and "fake".
// stdin feeds confirmation prompts.
func newTestEnv(t *testing.T, defaultDriver, stdin string) *testEnv {
	t.Helper()

	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.env = &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		LoadConfig: func(name string) (*config.Config, error) {
			if name != "" {
				return config.LoadConfig(name)
			}
			cfg := config.DefaultConfig()
			cfg.Default = defaultDriver
			return cfg, nil
		},
		NewDokufy: func(cfg *config.Config, log logger.Logger) (*dokufy.Dokufy, error) {
			r := dokufy.NewRegistry()
			r.Register("file", func() (dokufy.Driver, error) { return fileDriver{name: "file", available: true}, nil })
			r.Register("offline", func() (dokufy.Driver, error) { return fileDriver{name: "offline"}, nil })
			r.Register(config.DriverFake, func() (dokufy.Driver, error) { return dokufy.NewFakeDriver(nil), nil })
			return dokufy.New(dokufy.WithConfig(cfg), dokufy.WithRegistry(r), dokufy.WithLogger(log))
		},
	}
	return te
}

func (te *testEnv) run(args ...string) int {
	return runMain(context.Background(), append([]string{"dokufy"}, args...), te.env)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
