package main

// Notes:
// - TestLoadConfig_Env uses t.Setenv and does not run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-dokufy/internal/config"
)

// ---------------------------------------------------------------------------
// TestConfigCommand - Effective configuration output
// ---------------------------------------------------------------------------

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "file", "")
	if code := te.run("config"); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
	}
	for _, want := range []string{"default: file", "format: A4", "margin_top: 1in"} {
		if !strings.Contains(te.stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, te.stdout)
		}
	}
}

func TestConfigCommand_FromFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, filepath.Join(t.TempDir(), "dokufy.yaml"), "default: gotenberg\npdf:\n  orientation: landscape\n")

	te := newTestEnv(t, "file", "")
	if code := te.run("config", "--config", path); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
	}
	for _, want := range []string{"default: gotenberg", "orientation: landscape"} {
		if !strings.Contains(te.stdout.String(), want) {
			t.Errorf("stdout missing %q:\n%s", want, te.stdout)
		}
	}
}

func TestConfigCommand_Env(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t, "file", "")
	if code := te.run("config", "--env"); code != ExitSuccess {
		t.Fatalf("exit code = %d (stderr: %s)", code, te.stderr)
	}
	lines := strings.Split(strings.TrimSpace(te.stdout.String()), "\n")
	if len(lines) != len(config.EnvKeys()) {
		t.Errorf("listed %d variables, want %d", len(lines), len(config.EnvKeys()))
	}
	if lines[0] != "DOKUFY_DRIVER" {
		t.Errorf("first variable = %q", lines[0])
	}
}

func TestConfigCommand_Invalid(t *testing.T) {
	t.Parallel()

	path := writeFile(t, filepath.Join(t.TempDir(), "bad.yaml"), "pdf:\n  format: B7\n")

	te := newTestEnv(t, "file", "")
	if code := te.run("config", "-c", path); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "invalid config") {
		t.Errorf("stderr = %q", te.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Production config loader (not parallel: uses t.Setenv)
// ---------------------------------------------------------------------------

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("DOKUFY_DRIVER", "gotenberg")
	t.Setenv("DOKUFY_PDF_FORMAT", "Letter")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Default != "gotenberg" || cfg.PDF.Format != "Letter" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Parallel()

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("loadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dokufy.yaml")
	if err := os.WriteFile(path, []byte("templates:\n  path: /srv/templates\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Templates.Path != "/srv/templates" {
		t.Errorf("templates.path = %q", cfg.Templates.Path)
	}
}
