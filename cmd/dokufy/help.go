package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dokufy <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate    Generate a PDF or DOCX from a template")
	fmt.Fprintln(w, "  status      Check driver availability")
	fmt.Fprintln(w, "  config      Print the effective configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'dokufy help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dokufy generate <input> <output> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a document from a template. The output extension picks the")
	fmt.Fprintln(w, "format: .pdf or .docx.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     HTML, Markdown or office template")
	fmt.Fprintln(w, "  output    Output path ending in .pdf or .docx")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generation:")
	fmt.Fprintln(w, "  -d, --driver <name>       Driver: gotenberg, libreoffice, chromium, stencil, fake")
	fmt.Fprintln(w, "      --data <json>         JSON object of placeholder data")
	fmt.Fprintln(w, "      --data-file <path>    JSON file of placeholder data")
	fmt.Fprintln(w, "  -f, --force               Overwrite the output without asking")
	fmt.Fprintln(w, "      --fill                Fill placeholders in DOCX templates (default: copy)")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printStatusUsage prints usage for the status command.
func printStatusUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dokufy status [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the availability of every driver. Exits 1 when no driver is")
	fmt.Fprintln(w, "available or the default driver is not.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Print status as JSON")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dokufy config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after the config file,")
	fmt.Fprintln(w, ".env and DOKUFY_* overrides are applied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --env                 List the environment variables instead")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdGenerate:
		printGenerateUsage(env.Stdout)
	case cmdStatus:
		printStatusUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: dokufy version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: dokufy help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
