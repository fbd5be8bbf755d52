// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("DOKUFY_CHROMIUM_NO_SANDBOX") == "" {
		hints = append(hints, "set DOKUFY_CHROMIUM_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("DOKUFY_CHROMIUM_BROWSER_BINARY") == "" {
		hints = append(hints, "set DOKUFY_CHROMIUM_BROWSER_BINARY to use a custom Chrome")
	}

	return formatHints(hints)
}

// ForDriverUnavailable returns setup hints for a driver whose backend is missing.
func ForDriverUnavailable(driver string) string {
	switch driver {
	case config.DriverGotenberg:
		return format("start a Gotenberg service (docker run -p 3000:3000 gotenberg/gotenberg:8) and set DOKUFY_GOTENBERG_URL")
	case config.DriverLibreOffice:
		return format("install LibreOffice or set DOKUFY_LIBREOFFICE_BINARY to the soffice path")
	case config.DriverChromium:
		return ForBrowserConnect()
	case config.DriverStencil:
		return format("install Chrome, wkhtmltopdf or weasyprint and set DOKUFY_PDF_RENDERER accordingly")
	default:
		return ""
	}
}

// ForDriverNotFound lists the registered drivers.
func ForDriverNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTimeout returns a hint about raising a driver timeout.
func ForTimeout(driver string) string {
	if driver == "" {
		return format("raise the driver timeout in the config file")
	}
	return format("raise drivers." + driver + ".timeout in the config file")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/dokufy/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/dokufy") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOutputExtension returns the accepted output extensions.
func ForOutputExtension() string {
	return format("output must end in .pdf or .docx")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
