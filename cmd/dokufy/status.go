package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-dokufy/internal/config"
	"github.com/alnah/go-dokufy/internal/hints"
)

// driverDescriptions documents the built-in drivers in status output.
var driverDescriptions = map[string]string{
	config.DriverGotenberg:   "Gotenberg service over HTTP",
	config.DriverLibreOffice: "LibreOffice in headless mode",
	config.DriverChromium:    "Headless Chrome through go-rod",
	config.DriverStencil:     "Native DOCX with go-stencil and a PDF renderer",
	config.DriverFake:        "Recording driver for tests",
}

// driverStatus is one row of the status report.
type driverStatus struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	Default     bool   `json:"default"`
}

// statusReport holds driver availability.
type statusReport struct {
	Default        string         `json:"default"`
	Drivers        []driverStatus `json:"drivers"`
	AvailableCount int            `json:"available_count"`
	Ready          bool           `json:"ready"`
}

// runStatus checks every registered driver and returns an exit code.
// Exit codes: 0 = default driver available, 1 = no driver or default unavailable.
func runStatus(ctx context.Context, args []string, env *Environment) int {
	f, err := parseStatusFlags(args, env.Stderr)
	if err != nil {
		return report(env.Stderr, err)
	}
	cfg, err := env.LoadConfig(f.common.config)
	if err != nil {
		return report(env.Stderr, err)
	}
	d, err := env.NewDokufy(cfg, env.newLogger(&f.common))
	if err != nil {
		return report(env.Stderr, err)
	}
	defer d.Close()

	r := &statusReport{Default: d.DefaultDriver()}
	defaultAvailable := false
	for _, name := range d.Registry().Names() {
		s := driverStatus{
			Name:        name,
			Description: driverDescriptions[name],
			Available:   d.IsDriverAvailable(ctx, name),
			Default:     name == r.Default,
		}
		if s.Available {
			r.AvailableCount++
			defaultAvailable = defaultAvailable || s.Default
		}
		r.Drivers = append(r.Drivers, s)
	}
	r.Ready = r.AvailableCount > 0 && defaultAvailable

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		printStatusReport(env.Stdout, r)
	}

	if !r.Ready {
		return ExitGeneral
	}
	return ExitSuccess
}

// printStatusReport outputs a human-readable driver table.
func printStatusReport(w io.Writer, r *statusReport) {
	fmt.Fprintln(w, "Dokufy Driver Status")
	fmt.Fprintln(w)

	for _, s := range r.Drivers {
		mark := "[--]"
		if s.Available {
			mark = "[OK]"
		}
		fmt.Fprintf(w, "  %s %-12s %s\n", mark, s.Name, s.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Default driver:    %s\n", r.Default)
	fmt.Fprintf(w, "Available drivers: %d/%d\n", r.AvailableCount, len(r.Drivers))
	fmt.Fprintln(w)

	switch {
	case r.AvailableCount == 0:
		fmt.Fprintln(w, "Status: No drivers are available")
	case !r.Ready:
		fmt.Fprintf(w, "Status: Default driver [%s] is not available%s\n", r.Default, hints.ForDriverUnavailable(r.Default))
		fmt.Fprintf(w, "Available drivers: %s\n", strings.Join(availableNames(r), ", "))
	default:
		fmt.Fprintln(w, "Status: Ready")
	}
}

func availableNames(r *statusReport) []string {
	var names []string
	for _, s := range r.Drivers {
		if s.Available {
			names = append(names, s.Name)
		}
	}
	return names
}
