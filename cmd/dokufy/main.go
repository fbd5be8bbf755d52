package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdGenerate   = "generate"
	cmdStatus     = "status"
	cmdConfig     = "config"
	cmdCompletion = "completion"
	cmdVersion    = "version"
	cmdHelp       = "help"
)

func main() {
	verbose := slices.Contains(os.Args, "--verbose") || slices.Contains(os.Args, "-v")

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case cmdGenerate:
		return report(env.Stderr, runGenerate(ctx, rest, env))
	case cmdStatus:
		return runStatus(ctx, rest, env)
	case cmdConfig:
		return report(env.Stderr, runConfig(rest, env))
	case cmdCompletion:
		return report(env.Stderr, runCompletion(rest, env))
	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "dokufy %s\n", Version)
		return ExitSuccess
	case cmdHelp, "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// report prints err with its hint and maps it to an exit code.
// Help requests were already answered by the flag set's usage.
func report(w io.Writer, err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch s {
	case cmdGenerate, cmdStatus, cmdConfig, cmdCompletion, cmdVersion, cmdHelp:
		return true
	}
	return false
}
