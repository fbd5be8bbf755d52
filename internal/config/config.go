package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/alnah/go-dokufy/internal/fileutil"
	"github.com/alnah/go-dokufy/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
)

// Built-in driver names.
const (
	DriverGotenberg   = "gotenberg"
	DriverLibreOffice = "libreoffice"
	DriverChromium    = "chromium"
	DriverStencil     = "stencil"
	DriverFake        = "fake"
)

// Field limits.
const (
	MaxDriverNameLength = 64
	MaxPathLength       = 4096
	MaxURLLength        = 2048
)

// MarginPattern matches a margin string: a non-negative number followed by
// an optional unit (in, cm, mm, any case). Whitespace between number and unit is allowed.
var MarginPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(in|cm|mm)?\s*$`)

// PageFormats lists the accepted pdf.format values (compared case-insensitively).
var PageFormats = []string{"A0", "A1", "A2", "A3", "A4", "A5", "A6", "Letter", "Legal", "Tabloid", "Ledger"}

// Orientations lists the accepted pdf.orientation values.
var Orientations = []string{"portrait", "landscape"}

// Config holds all configuration for document generation.
type Config struct {
	Default   string                    `yaml:"default" json:"default"`
	Drivers   map[string]DriverSettings `yaml:"drivers" json:"drivers"`
	PDF       PDFConfig                 `yaml:"pdf" json:"pdf"`
	Templates TemplatesConfig           `yaml:"templates" json:"templates"`
}

// PDFConfig holds page layout defaults shared by drivers that style pages.
type PDFConfig struct {
	Format       string `yaml:"format" json:"format"`
	Orientation  string `yaml:"orientation" json:"orientation"`
	MarginTop    string `yaml:"margin_top" json:"margin_top"`
	MarginBottom string `yaml:"margin_bottom" json:"margin_bottom"`
	MarginLeft   string `yaml:"margin_left" json:"margin_left"`
	MarginRight  string `yaml:"margin_right" json:"margin_right"`
}

// TemplatesConfig defines where relative template paths are looked up.
type TemplatesConfig struct {
	Path string `yaml:"path" json:"path"`
}

// DefaultConfig returns the built-in defaults: every driver section present,
// A4 portrait pages, and the native library driver as default.
func DefaultConfig() *Config {
	return &Config{
		Default: DriverStencil,
		Drivers: map[string]DriverSettings{
			DriverGotenberg: {
				"url":     "http://gotenberg:3000",
				"timeout": 120,
			},
			DriverLibreOffice: {
				"binary":  "libreoffice",
				"timeout": 120,
			},
			DriverChromium: {
				"timeout": 60,
			},
			DriverStencil: {
				"pdf_renderer": "chrome",
			},
			DriverFake: {},
		},
		PDF: PDFConfig{
			Format:       "A4",
			Orientation:  "portrait",
			MarginTop:    "1in",
			MarginBottom: "1in",
			MarginLeft:   "0.5in",
			MarginRight:  "0.5in",
		},
	}
}

// Driver returns a copy of the settings for name. Missing sections yield an empty map.
func (c *Config) Driver(name string) DriverSettings {
	if c == nil {
		return DriverSettings{}
	}
	return c.Drivers[name].Clone()
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Drivers = make(map[string]DriverSettings, len(c.Drivers))
	for name, s := range c.Drivers {
		out.Drivers[name] = s.Clone()
	}
	return &out
}

// Validate checks the config with ozzo-validation rules.
// Called by LoadConfig and by the orchestrator when a Config is injected.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Default, validation.Required, validation.Length(1, MaxDriverNameLength)),
		validation.Field(&c.PDF),
		validation.Field(&c.Templates),
		validation.Field(&c.Drivers, validation.By(validateDrivers)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}

// Validate implements validation.Validatable.
func (p PDFConfig) Validate() error {
	margin := validation.Match(MarginPattern).Error("must be a number with optional unit in, cm or mm")
	return validation.ValidateStruct(&p,
		validation.Field(&p.Format, validation.By(oneOfFold(PageFormats))),
		validation.Field(&p.Orientation, validation.By(oneOfFold(Orientations))),
		validation.Field(&p.MarginTop, margin),
		validation.Field(&p.MarginBottom, margin),
		validation.Field(&p.MarginLeft, margin),
		validation.Field(&p.MarginRight, margin),
	)
}

// Validate implements validation.Validatable.
func (t TemplatesConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Path, validation.Length(0, MaxPathLength)),
	)
}

func validateDrivers(value any) error {
	drivers, _ := value.(map[string]DriverSettings)
	for name, s := range drivers {
		if len(name) > MaxDriverNameLength {
			return fmt.Errorf("driver name %q exceeds %d chars", name, MaxDriverNameLength)
		}
		if raw, ok := s["timeout"]; ok {
			secs, err := cast.ToIntE(raw)
			if err != nil || secs <= 0 {
				return fmt.Errorf("drivers.%s.timeout: must be a positive number of seconds, got %v", name, raw)
			}
		}
		if url := s.String("url"); url != "" {
			if len(url) > MaxURLLength || !fileutil.IsURL(url) {
				return fmt.Errorf("drivers.%s.url: must be an http(s) URL, got %q", name, url)
			}
		}
	}
	return nil
}

func oneOfFold(allowed []string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %s", strings.Join(allowed, ", "))
	}
}

// LoadConfig loads configuration from a file path or config name and
// overlays it on DefaultConfig.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var loaded Config
	if err := yamlutil.DecodeFile(configPath, &loaded); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	cfg.merge(&loaded)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge overlays the non-empty values of other onto c.
// Driver sections merge key by key.
func (c *Config) merge(other *Config) {
	if other.Default != "" {
		c.Default = other.Default
	}
	for name, s := range other.Drivers {
		dst, ok := c.Drivers[name]
		if !ok {
			dst = DriverSettings{}
			c.Drivers[name] = dst
		}
		for k, v := range s {
			dst[k] = v
		}
	}
	overlay := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	overlay(&c.PDF.Format, other.PDF.Format)
	overlay(&c.PDF.Orientation, other.PDF.Orientation)
	overlay(&c.PDF.MarginTop, other.PDF.MarginTop)
	overlay(&c.PDF.MarginBottom, other.PDF.MarginBottom)
	overlay(&c.PDF.MarginLeft, other.PDF.MarginLeft)
	overlay(&c.PDF.MarginRight, other.PDF.MarginRight)
	overlay(&c.Templates.Path, other.Templates.Path)
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/dokufy/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "dokufy", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
