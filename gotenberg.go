package dokufy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-dokufy/internal/fileutil"
)

// Gotenberg defaults.
const (
	DefaultGotenbergURL    = "http://gotenberg:3000"
	gotenbergHealthTimeout = 5 * time.Second
	gotenbergTimeout       = 120 * time.Second
)

// Gotenberg routes.
const (
	gotenbergHealthPath      = "/health"
	gotenbergChromiumPath    = "/forms/chromium/convert/html"
	gotenbergLibreOfficePath = "/forms/libreoffice/convert"
)

// GotenbergDriver converts through a Gotenberg service over HTTP.
type GotenbergDriver struct {
	settings DriverSettings
	url      string
	timeout  time.Duration
	client   *http.Client
}

// NewGotenbergDriver reads url and timeout from settings.
// A nil client uses a default http.Client; per-request timeouts come from context.
func NewGotenbergDriver(settings DriverSettings, client *http.Client) *GotenbergDriver {
	url := strings.TrimRight(settings.String("url"), "/")
	if url == "" {
		url = DefaultGotenbergURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &GotenbergDriver{
		settings: settings.Clone(),
		url:      url,
		timeout:  settings.Seconds("timeout", gotenbergTimeout),
		client:   client,
	}
}

func (g *GotenbergDriver) Name() string { return DriverGotenberg }

func (g *GotenbergDriver) Config() DriverSettings { return g.settings.Clone() }

func (g *GotenbergDriver) Supports() []Format {
	return []Format{FormatHTML, FormatDocx, FormatXlsx, FormatPptx, FormatODT, FormatMarkdown}
}

// IsAvailable sends GET /health within five seconds and expects 200.
func (g *GotenbergDriver) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, gotenbergHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+gotenbergHealthPath, nil)
	if err != nil {
		return false
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// HTMLToPDF posts html as index.html to the Chromium route.
func (g *GotenbergDriver) HTMLToPDF(ctx context.Context, html, outputPath string) (string, error) {
	return g.convert(ctx, gotenbergChromiumPath, "index.html", strings.NewReader(html), outputPath)
}

// DocxToPDF posts the source file to the LibreOffice route.
func (g *GotenbergDriver) DocxToPDF(ctx context.Context, sourcePath, outputPath string) (string, error) {
	f, err := os.Open(sourcePath) // #nosec G304 -- caller-provided template path
	if err != nil {
		return "", fmt.Errorf("%w: source file not found: %s", ErrConversionFailed, sourcePath)
	}
	defer f.Close()

	return g.convert(ctx, gotenbergLibreOfficePath, filepath.Base(sourcePath), f, outputPath)
}

func (g *GotenbergDriver) convert(ctx context.Context, route, filename string, content io.Reader, outputPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, contentType, err := multipartBody(filename, content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+route, body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: gotenberg returned %s: %s", ErrConversionFailed, resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := writeOutput(outputPath, resp.Body); err != nil {
		return "", err
	}
	return outputPath, nil
}

// multipartBody wraps content in a "files" form part.
func multipartBody(filename string, content io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// writeOutput streams r to path, creating parent directories.
func writeOutput(path string, r io.Reader) error {
	if err := fileutil.EnsureParentDir(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConversionOutput, path, err)
	}
	f, err := os.Create(path) // #nosec G304 -- caller-provided output path
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConversionOutput, path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("%w: %s: %v", ErrConversionFailed, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConversionOutput, path, err)
	}
	return nil
}
