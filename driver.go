package dokufy

import (
	"context"
	"slices"

	"github.com/alnah/go-dokufy/internal/config"
)

// Format is an input format tag a driver can convert from.
type Format string

// Known input formats.
const (
	FormatHTML     Format = "html"
	FormatDocx     Format = "docx"
	FormatXlsx     Format = "xlsx"
	FormatPptx     Format = "pptx"
	FormatODT      Format = "odt"
	FormatMarkdown Format = "markdown"
)

// Built-in driver names.
const (
	DriverGotenberg   = config.DriverGotenberg
	DriverLibreOffice = config.DriverLibreOffice
	DriverChromium    = config.DriverChromium
	DriverStencil     = config.DriverStencil
	DriverFake        = config.DriverFake
)

// Configuration types shared with the config loader.
type (
	Config         = config.Config
	DriverSettings = config.DriverSettings
	PDFConfig      = config.PDFConfig
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config { return config.DefaultConfig() }

// LoadConfig loads a YAML config file by path or name over the defaults.
func LoadConfig(nameOrPath string) (*Config, error) { return config.LoadConfig(nameOrPath) }

// Driver converts documents through one backend.
//
// IsAvailable never panics and never returns an error: any check failure
// reports false. Conversion methods return the written output path.
type Driver interface {
	Name() string
	Config() DriverSettings
	Supports() []Format
	IsAvailable(ctx context.Context) bool
	HTMLToPDF(ctx context.Context, html, outputPath string) (string, error)
	DocxToPDF(ctx context.Context, sourcePath, outputPath string) (string, error)
}

// DocxWriter is implemented by drivers that can turn markup into a DOCX file.
type DocxWriter interface {
	HTMLToDocx(ctx context.Context, html, outputPath string) (string, error)
}

// Compile-time interface checks.
var (
	_ Driver     = (*GotenbergDriver)(nil)
	_ Driver     = (*LibreOfficeDriver)(nil)
	_ Driver     = (*ChromiumDriver)(nil)
	_ Driver     = (*StencilDriver)(nil)
	_ Driver     = (*FakeDriver)(nil)
	_ DocxWriter = (*StencilDriver)(nil)
)

// SupportsFormat reports whether d lists f among its input formats.
func SupportsFormat(d Driver, f Format) bool {
	return slices.Contains(d.Supports(), f)
}
