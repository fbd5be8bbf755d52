package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	logLevel  string
	logFormat string
	verbose   bool
}

// generateFlags holds generate command flags.
type generateFlags struct {
	common   commonFlags
	driver   string
	data     string
	dataFile string
	force    bool
	fill     bool
}

// statusFlags holds status command flags.
type statusFlags struct {
	common commonFlags
	json   bool
}

// configFlags holds config command flags.
type configFlags struct {
	common commonFlags
	env    bool
}

// addCommonFlags adds config and logging flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "console", "log format: console, json")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
}

// buildGenerateFlagSet registers generate flags on a new FlagSet.
// Completion reuses it so flags are declared once.
func buildGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdGenerate, flag.ContinueOnError)
	fs.StringVarP(&f.driver, "driver", "d", "", "driver to use for conversion")
	fs.StringVar(&f.data, "data", "", "JSON object of placeholder data")
	fs.StringVar(&f.dataFile, "data-file", "", "path to a JSON file of placeholder data")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite the output file if it exists")
	fs.BoolVar(&f.fill, "fill", false, "fill placeholders when writing DOCX from a DOCX template")
	addCommonFlags(fs, &f.common)
	return fs
}

func buildStatusFlagSet(f *statusFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdStatus, flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print status as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

func buildConfigFlagSet(f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdConfig, flag.ContinueOnError)
	fs.BoolVar(&f.env, "env", false, "list the environment variables that override the config")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseGenerateFlags parses generate flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	f := &generateFlags{}
	fs := buildGenerateFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printGenerateUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

func parseStatusFlags(args []string, stderr io.Writer) (*statusFlags, error) {
	f := &statusFlags{}
	fs := buildStatusFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printStatusUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

func parseConfigFlags(args []string, stderr io.Writer) (*configFlags, error) {
	f := &configFlags{}
	fs := buildConfigFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConfigUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	return f, nil
}
