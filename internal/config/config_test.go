package config

// Notes:
// - ApplyEnv tests use t.Setenv and therefore do not run in parallel.
// - resolveConfigPath user-directory branch is covered indirectly; writing into
//   the real user config directory from tests is not acceptable.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Built-in defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Default != DriverStencil {
		t.Errorf("Default = %q, want %q", cfg.Default, DriverStencil)
	}
	for _, name := range []string{DriverGotenberg, DriverLibreOffice, DriverChromium, DriverStencil, DriverFake} {
		if _, ok := cfg.Drivers[name]; !ok {
			t.Errorf("Drivers[%q] missing", name)
		}
	}
	if got := cfg.Driver(DriverGotenberg).String("url"); got != "http://gotenberg:3000" {
		t.Errorf("gotenberg url = %q", got)
	}
	if got := cfg.Driver(DriverLibreOffice).Seconds("timeout", 0); got != 120*time.Second {
		t.Errorf("libreoffice timeout = %v, want 120s", got)
	}
	if got := cfg.Driver(DriverChromium).Seconds("timeout", 0); got != 60*time.Second {
		t.Errorf("chromium timeout = %v, want 60s", got)
	}
	if cfg.PDF.Format != "A4" || cfg.PDF.Orientation != "portrait" {
		t.Errorf("PDF = %+v", cfg.PDF)
	}
	if cfg.PDF.MarginTop != "1in" || cfg.PDF.MarginLeft != "0.5in" {
		t.Errorf("PDF margins = %+v", cfg.PDF)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfig_DriverReturnsCopy(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	s := cfg.Driver(DriverGotenberg)
	s["url"] = "http://mutated"

	if got := cfg.Driver(DriverGotenberg).String("url"); got != "http://gotenberg:3000" {
		t.Errorf("Driver() leaked mutation: url = %q", got)
	}
	if got := cfg.Driver("unknown"); len(got) != 0 {
		t.Errorf("Driver(unknown) = %v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - ozzo-validation rules
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(c *Config) {}},
		{name: "empty default", mutate: func(c *Config) { c.Default = "" }, wantErr: "default"},
		{name: "bad format", mutate: func(c *Config) { c.PDF.Format = "B7" }, wantErr: "format"},
		{name: "format case-insensitive", mutate: func(c *Config) { c.PDF.Format = "letter" }},
		{name: "bad orientation", mutate: func(c *Config) { c.PDF.Orientation = "diagonal" }, wantErr: "orientation"},
		{name: "bad margin unit", mutate: func(c *Config) { c.PDF.MarginTop = "2pt" }, wantErr: "margin_top"},
		{name: "unitless margin", mutate: func(c *Config) { c.PDF.MarginBottom = "3" }},
		{name: "negative timeout", mutate: func(c *Config) { c.Drivers[DriverGotenberg]["timeout"] = -5 }, wantErr: "timeout"},
		{name: "text timeout", mutate: func(c *Config) { c.Drivers[DriverLibreOffice]["timeout"] = "soon" }, wantErr: "timeout"},
		{name: "string timeout", mutate: func(c *Config) { c.Drivers[DriverLibreOffice]["timeout"] = "30" }},
		{name: "bad url", mutate: func(c *Config) { c.Drivers[DriverGotenberg]["url"] = "gotenberg:3000" }, wantErr: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("Validate() error = %v, want ErrConfigInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and merging
// ---------------------------------------------------------------------------

func TestLoadConfig_MergesOntoDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "dokufy.yaml")
	content := `default: gotenberg
drivers:
  gotenberg:
    url: http://localhost:3000
pdf:
  orientation: landscape
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Default != DriverGotenberg {
		t.Errorf("Default = %q", cfg.Default)
	}
	gs := cfg.Driver(DriverGotenberg)
	if gs.String("url") != "http://localhost:3000" {
		t.Errorf("url = %q", gs.String("url"))
	}
	if gs.Seconds("timeout", 0) != 120*time.Second {
		t.Errorf("timeout default lost: %v", gs.Seconds("timeout", 0))
	}
	if cfg.PDF.Orientation != "landscape" || cfg.PDF.Format != "A4" {
		t.Errorf("PDF = %+v", cfg.PDF)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("defualt: fake\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("pdf:\n  margin_top: wide\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty name", input: "", wantErr: ErrEmptyConfigName},
		{name: "missing file", input: filepath.Join(dir, "missing.yaml"), wantErr: ErrConfigNotFound},
		{name: "missing name", input: "no-such-dokufy-config", wantErr: ErrConfigNotFound},
		{name: "unknown field", input: unknown, wantErr: ErrConfigParse},
		{name: "invalid value", input: invalid, wantErr: ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnv - Environment overrides (not parallel: uses t.Setenv)
// ---------------------------------------------------------------------------

func TestApplyEnv(t *testing.T) {
	t.Setenv("DOKUFY_DRIVER", "gotenberg")
	t.Setenv("DOKUFY_GOTENBERG_URL", "http://convert.internal:3000")
	t.Setenv("DOKUFY_LIBREOFFICE_TIMEOUT", "45")
	t.Setenv("DOKUFY_PDF_RENDERER", "weasyprint")
	t.Setenv("DOKUFY_PDF_ORIENTATION", "landscape")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Default != "gotenberg" {
		t.Errorf("Default = %q", cfg.Default)
	}
	if got := cfg.Driver(DriverGotenberg).String("url"); got != "http://convert.internal:3000" {
		t.Errorf("gotenberg url = %q", got)
	}
	if got := cfg.Driver(DriverLibreOffice).Seconds("timeout", 0); got != 45*time.Second {
		t.Errorf("libreoffice timeout = %v", got)
	}
	if got := cfg.Driver(DriverStencil).String("pdf_renderer"); got != "weasyprint" {
		t.Errorf("pdf_renderer = %q", got)
	}
	if cfg.PDF.Orientation != "landscape" {
		t.Errorf("orientation = %q", cfg.PDF.Orientation)
	}
}

func TestApplyEnv_DotenvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("DOKUFY_PDF_FORMAT=Letter\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	// Registered so t.Setenv restores the variable godotenv sets.
	t.Setenv("DOKUFY_PDF_FORMAT", "")
	if err := os.Unsetenv("DOKUFY_PDF_FORMAT"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.PDF.Format != "Letter" {
		t.Errorf("format = %q, want Letter", cfg.PDF.Format)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("DOKUFY_PDF_MARGIN_LEFT", "lots")

	err := ApplyEnv(DefaultConfig())
	if !errors.Is(err, ErrConfigInvalid) {
		t.Errorf("ApplyEnv() error = %v, want ErrConfigInvalid", err)
	}
}

func TestEnvKeys(t *testing.T) {
	t.Parallel()

	keys := EnvKeys()
	want := map[string]bool{"DOKUFY_DRIVER": false, "DOKUFY_GOTENBERG_URL": false, "DOKUFY_PDF_MARGIN_TOP": false}
	for _, k := range keys {
		if _, ok := want[k]; ok {
			want[k] = true
		}
	}
	for k, seen := range want {
		if !seen {
			t.Errorf("EnvKeys() missing %s", k)
		}
	}
}
