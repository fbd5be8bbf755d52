package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-dokufy"
	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/hints"
)

// Exit codes for the dokufy CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // Document generated, or status ready
	ExitGeneral = 1 // Missing input, bad output extension, driver or conversion failure
	ExitUsage   = 2 // Invalid flags, arguments or config
)

// Sentinel errors for CLI operations.
var (
	ErrUsage           = errors.New("invalid usage")
	ErrInputNotFound   = errors.New("input file not found")
	ErrOutputExtension = errors.New("unsupported output format")
)

// usageError wraps a flag parsing error. Help requests pass through.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var driverErr *driverError
	driver := ""
	available := []string(nil)
	if errors.As(err, &driverErr) {
		driver = driverErr.driver
		available = driverErr.available
	}

	switch {
	case errors.Is(err, flag.ErrHelp):
		return ""
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case errors.Is(err, dokufy.ErrDriverNotFound):
		return hints.ForDriverNotFound(available)
	case errors.Is(err, dokufy.ErrDriverUnavailable), errors.Is(err, dokufy.ErrDriverNotConfigured):
		return hints.ForDriverUnavailable(driver)
	case errors.Is(err, dokufy.ErrConversionFailed) && strings.Contains(err.Error(), "timed out"):
		return hints.ForTimeout(driver)
	case errors.Is(err, dokufy.ErrConversionOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrOutputExtension):
		return hints.ForOutputExtension()
	default:
		return ""
	}
}

// searchedPaths extracts the "tried a, b" list from a config lookup error.
func searchedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}

// driverError carries the driver in use so hints can name it.
type driverError struct {
	driver    string
	available []string
	err       error
}

func (e *driverError) Error() string { return e.err.Error() }

func (e *driverError) Unwrap() error { return e.err }
