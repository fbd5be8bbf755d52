package dokufy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-dokufy/internal/docxtemplate"
	"github.com/alnah/go-dokufy/internal/fileutil"
	"github.com/alnah/go-dokufy/internal/pipeline"
	"github.com/alnah/go-dokufy/internal/process"
)

// PDF renderers the stencil driver can hand HTML to.
const (
	RendererChrome      = "chrome"
	RendererWkhtmltopdf = "wkhtmltopdf"
	RendererWeasyPrint  = "weasyprint"
)

const stencilTimeout = 120 * time.Second

// rendererDirs are searched before PATH. "/opt/<name>/bin" is added per renderer.
var rendererDirs = []string{"/usr/local/bin", "/usr/bin", "/opt/homebrew/bin"}

// StencilDriver converts DOCX files natively with go-stencil and prints the
// result through an HTML-to-PDF renderer. It also writes DOCX from HTML.
type StencilDriver struct {
	settings DriverSettings
	pdf      PDFConfig
	renderer string
	timeout  time.Duration
	assets   AssetLoader
	runner   CommandRunner
	chrome   pdfRenderer

	chromeLookup func() (string, bool)
	lookPath     func(string) (string, error)
	dirs         []string
}

// NewStencilDriver reads pdf_renderer and timeout from settings.
// Nil runner and loader use process execution and the built-in assets.
func NewStencilDriver(settings DriverSettings, pdf PDFConfig, loader AssetLoader, runner CommandRunner) *StencilDriver {
	renderer := strings.ToLower(settings.String("pdf_renderer"))
	if renderer == "" {
		renderer = RendererChrome
	}
	if loader == nil {
		loader = NewAssetLoader("")
	}
	if runner == nil {
		runner = &process.ExecRunner{}
	}
	timeout := settings.Seconds("timeout", stencilTimeout)
	chrome := newRodRenderer(settings.String("browser_binary"), settings.Bool("no_sandbox"), timeout)

	return &StencilDriver{
		settings:     settings.Clone(),
		pdf:          pdf,
		renderer:     renderer,
		timeout:      timeout,
		assets:       loader,
		runner:       runner,
		chrome:       chrome,
		chromeLookup: chrome.browserPath,
		lookPath:     exec.LookPath,
		dirs:         rendererDirs,
	}
}

func (s *StencilDriver) Name() string { return DriverStencil }

func (s *StencilDriver) Config() DriverSettings { return s.settings.Clone() }

func (s *StencilDriver) Supports() []Format { return []Format{FormatDocx} }

// IsAvailable reports whether the configured PDF renderer can be found.
func (s *StencilDriver) IsAvailable(context.Context) bool {
	_, err := s.resolveRenderer()
	return err == nil
}

// resolveRenderer returns the renderer executable. An unknown or missing
// renderer is ErrDriverNotConfigured.
func (s *StencilDriver) resolveRenderer() (string, error) {
	missing := fmt.Errorf("%w: stencil (missing PDF renderer: %s)", ErrDriverNotConfigured, s.renderer)

	switch s.renderer {
	case RendererChrome:
		if path, ok := s.chromeLookup(); ok {
			return path, nil
		}
		return "", missing
	case RendererWkhtmltopdf, RendererWeasyPrint:
		dirs := append(append([]string(nil), s.dirs...), filepath.Join("/opt", s.renderer, "bin"))
		for _, dir := range dirs {
			candidate := filepath.Join(dir, s.renderer)
			if fileutil.IsExecutable(candidate) {
				return candidate, nil
			}
		}
		if path, err := s.lookPath(s.renderer); err == nil {
			return path, nil
		}
		return "", missing
	default:
		return "", missing
	}
}

// HTMLToPDF prints html through the configured renderer.
func (s *StencilDriver) HTMLToPDF(ctx context.Context, html, outputPath string) (string, error) {
	if err := s.renderPDF(ctx, html, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// DocxToPDF renders the DOCX body to HTML, then prints it.
// Template tags in the source stay literal.
func (s *StencilDriver) DocxToPDF(ctx context.Context, sourcePath, outputPath string) (string, error) {
	if ext := fileutil.Ext(sourcePath); ext != string(FormatDocx) {
		return "", fmt.Errorf("%w: %s (stencil reads docx only)", ErrUnsupportedFormat, ext)
	}
	if !fileutil.FileExists(sourcePath) {
		return "", fmt.Errorf("%w: source file not found: %s", ErrConversionFailed, sourcePath)
	}

	frag, err := pipeline.DocxToHTML(sourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	page, err := renderPage(s.assets, frag)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	if err := s.renderPDF(ctx, page, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}

// HTMLToDocx writes one DOCX paragraph per block-level element of html,
// keeping inline bold, italic, underline, strike and sub/superscript.
func (s *StencilDriver) HTMLToDocx(ctx context.Context, html, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	blocks, err := pipeline.SplitBlocks(html)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	proc, err := docxtemplate.FromBlocks(blocks)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer proc.Close()

	if err := proc.Save(outputPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	return outputPath, nil
}

func (s *StencilDriver) renderPDF(ctx context.Context, html, outputPath string) error {
	bin, err := s.resolveRenderer()
	if err != nil {
		return err
	}
	layout, err := ResolvePageLayout(s.pdf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}

	htmlPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer cleanup()

	if err := fileutil.EnsureParentDir(outputPath); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConversionOutput, outputPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	switch s.renderer {
	case RendererChrome:
		pdf, err := s.chrome.RenderFile(ctx, htmlPath, layout)
		if err != nil {
			return err
		}
		return writeOutput(outputPath, bytes.NewReader(pdf))
	case RendererWkhtmltopdf:
		args := append(wkhtmltopdfArgs(layout), htmlPath, outputPath)
		return s.run(ctx, bin, outputPath, args...)
	default:
		cssPath, cleanupCSS, err := fileutil.WriteTempFile(pageCSS(layout), "css")
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConversionFailed, err)
		}
		defer cleanupCSS()
		return s.run(ctx, bin, outputPath, "--stylesheet", cssPath, htmlPath, outputPath)
	}
}

// run executes an external renderer that writes outputPath itself. Any
// earlier file at outputPath is removed first so only fresh output counts.
func (s *StencilDriver) run(ctx context.Context, bin, outputPath string, args ...string) error {
	if err := os.Remove(outputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: removing stale %s: %v", ErrConversionOutput, outputPath, err)
	}
	_, stderr, err := s.runner.Run(ctx, bin, args...)
	if err != nil {
		if errors.Is(err, process.ErrTimeout) {
			return fmt.Errorf("%w: %s timed out after %s", ErrConversionFailed, s.renderer, s.timeout)
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s: %s", ErrConversionFailed, s.renderer, msg)
	}
	if !fileutil.FileExists(outputPath) {
		return fmt.Errorf("%w: %s", ErrConversionOutput, outputPath)
	}
	return nil
}

// Close shuts down the browser used by the chrome renderer.
func (s *StencilDriver) Close() error {
	return s.chrome.Close()
}

func mm(v float64) string {
	return fmt.Sprintf("%.2fmm", v)
}

func wkhtmltopdfArgs(layout PageLayout) []string {
	return []string{
		"--quiet",
		"--enable-local-file-access",
		"--page-width", mm(layout.WidthMM),
		"--page-height", mm(layout.HeightMM),
		"--margin-top", mm(layout.Margins.Top),
		"--margin-right", mm(layout.Margins.Right),
		"--margin-bottom", mm(layout.Margins.Bottom),
		"--margin-left", mm(layout.Margins.Left),
	}
}

// pageCSS expresses layout as an @page rule for weasyprint.
func pageCSS(layout PageLayout) string {
	return fmt.Sprintf("@page { size: %s %s; margin: %s %s %s %s; }\n",
		mm(layout.WidthMM), mm(layout.HeightMM),
		mm(layout.Margins.Top), mm(layout.Margins.Right),
		mm(layout.Margins.Bottom), mm(layout.Margins.Left))
}
