package dokufy

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-dokufy/internal/fileutil"
)

const chromiumTimeout = 60 * time.Second

// ChromiumDriver prints HTML to PDF in headless Chrome. It only takes markup.
type ChromiumDriver struct {
	settings DriverSettings
	pdf      PDFConfig
	renderer pdfRenderer
	lookup   func() (string, bool)
}

// NewChromiumDriver reads browser_binary, no_sandbox and timeout from
// settings; page geometry comes from pdf.
func NewChromiumDriver(settings DriverSettings, pdf PDFConfig) *ChromiumDriver {
	r := newRodRenderer(
		settings.String("browser_binary"),
		settings.Bool("no_sandbox"),
		settings.Seconds("timeout", chromiumTimeout),
	)
	return &ChromiumDriver{
		settings: settings.Clone(),
		pdf:      pdf,
		renderer: r,
		lookup:   r.browserPath,
	}
}

func (c *ChromiumDriver) Name() string { return DriverChromium }

func (c *ChromiumDriver) Config() DriverSettings { return c.settings.Clone() }

func (c *ChromiumDriver) Supports() []Format { return []Format{FormatHTML} }

// IsAvailable reports whether a Chrome executable can be found.
func (c *ChromiumDriver) IsAvailable(context.Context) bool {
	_, ok := c.lookup()
	return ok
}

// HTMLToPDF renders html with the configured page format, orientation and margins.
func (c *ChromiumDriver) HTMLToPDF(ctx context.Context, html, outputPath string) (string, error) {
	layout, err := ResolvePageLayout(c.pdf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer cleanup()

	pdf, err := c.renderer.RenderFile(ctx, tmpPath, layout)
	if err != nil {
		return "", err
	}
	if err := writeOutput(outputPath, bytes.NewReader(pdf)); err != nil {
		return "", err
	}
	return outputPath, nil
}

// DocxToPDF always fails: the browser cannot open office documents.
func (c *ChromiumDriver) DocxToPDF(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: docx (chromium renders HTML only)", ErrUnsupportedFormat)
}

// Close shuts down the browser if one was started.
func (c *ChromiumDriver) Close() error {
	return c.renderer.Close()
}
