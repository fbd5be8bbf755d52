package dokufy

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-dokufy/internal/fileutil"
	"github.com/alnah/go-dokufy/internal/process"
)

// CommandRunner runs external programs. Tests substitute a mock.
type CommandRunner = process.CommandRunner

// LibreOffice defaults.
const (
	DefaultLibreOfficeBinary = "libreoffice"
	libreOfficeTimeout       = 120 * time.Second
)

// libreOfficePaths are checked when the configured binary is not a usable path.
var libreOfficePaths = []string{
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
	"/usr/bin/libreoffice",
	"/usr/local/bin/libreoffice",
	"/usr/bin/soffice",
	"/opt/libreoffice/program/soffice",
}

// LibreOfficeDriver converts by running LibreOffice in headless mode.
type LibreOfficeDriver struct {
	settings DriverSettings
	binary   string
	timeout  time.Duration
	runner   CommandRunner
	lookPath func(string) (string, error)
	paths    []string
}

// NewLibreOfficeDriver reads binary and timeout from settings.
// A nil runner executes real processes.
func NewLibreOfficeDriver(settings DriverSettings, runner CommandRunner) *LibreOfficeDriver {
	binary := settings.String("binary")
	if binary == "" {
		binary = DefaultLibreOfficeBinary
	}
	if runner == nil {
		runner = &process.ExecRunner{}
	}
	return &LibreOfficeDriver{
		settings: settings.Clone(),
		binary:   binary,
		timeout:  settings.Seconds("timeout", libreOfficeTimeout),
		runner:   runner,
		lookPath: exec.LookPath,
		paths:    libreOfficePaths,
	}
}

func (l *LibreOfficeDriver) Name() string { return DriverLibreOffice }

func (l *LibreOfficeDriver) Config() DriverSettings { return l.settings.Clone() }

func (l *LibreOfficeDriver) Supports() []Format {
	return []Format{FormatHTML, FormatDocx, FormatXlsx, FormatPptx, FormatODT}
}

// IsAvailable reports whether a LibreOffice executable can be located.
func (l *LibreOfficeDriver) IsAvailable(context.Context) bool {
	_, err := l.resolveBinary()
	return err == nil
}

// resolveBinary tries the configured path, then well-known install paths,
// then PATH.
func (l *LibreOfficeDriver) resolveBinary() (string, error) {
	if fileutil.IsExecutable(l.binary) {
		return l.binary, nil
	}
	for _, p := range l.paths {
		if fileutil.IsExecutable(p) {
			return p, nil
		}
	}
	if p, err := l.lookPath(l.binary); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("%w: libreoffice binary %q not found", ErrDriverNotConfigured, l.binary)
}

// HTMLToPDF writes html to a temporary file and converts it.
func (l *LibreOfficeDriver) HTMLToPDF(ctx context.Context, html, outputPath string) (string, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	defer cleanup()

	return l.convert(ctx, tmpPath, outputPath)
}

// DocxToPDF converts any office document LibreOffice can open.
func (l *LibreOfficeDriver) DocxToPDF(ctx context.Context, sourcePath, outputPath string) (string, error) {
	if !fileutil.FileExists(sourcePath) {
		return "", fmt.Errorf("%w: source file not found: %s", ErrConversionFailed, sourcePath)
	}
	return l.convert(ctx, sourcePath, outputPath)
}

// convert runs soffice into the output directory, then renames the
// <stem>.pdf it produces to outputPath.
func (l *LibreOfficeDriver) convert(ctx context.Context, inputPath, outputPath string) (string, error) {
	binary, err := l.resolveBinary()
	if err != nil {
		return "", err
	}

	if err := fileutil.EnsureParentDir(outputPath); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConversionOutput, outputPath, err)
	}
	outDir := filepath.Dir(outputPath)
	produced := filepath.Join(outDir, fileutil.Stem(inputPath)+".pdf")

	// soffice can exit 0 without writing anything; stale files must not
	// pass for its output.
	for _, stale := range []string{outputPath, produced} {
		if err := os.Remove(stale); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: removing stale %s: %v", ErrConversionOutput, stale, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	_, stderr, err := l.runner.Run(ctx, binary, "--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath)
	if err != nil {
		if errors.Is(err, process.ErrTimeout) {
			return "", fmt.Errorf("%w: libreoffice timed out after %s", ErrConversionFailed, l.timeout)
		}
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: libreoffice: %s", ErrConversionFailed, msg)
	}

	if !fileutil.FileExists(produced) {
		return "", fmt.Errorf("%w: libreoffice wrote no %s", ErrConversionOutput, produced)
	}
	if produced != filepath.Clean(outputPath) {
		if err := os.Rename(produced, outputPath); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrConversionOutput, outputPath, err)
		}
	}
	return outputPath, nil
}
