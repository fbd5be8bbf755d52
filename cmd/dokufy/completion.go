package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-dokufy/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --driver
	Short  string   // -d (empty if none)
	Bool   bool     // takes no value
	Desc   string   // help text
	Values []string // fixed values, if any
	Glob   string   // file glob, if the value is a path
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Files string // glob for file arguments, empty if none
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types and descriptions come from the FlagSet.
type completionMeta struct {
	Values []string
	Glob   string
}

var flagCompletionMeta = map[string]completionMeta{
	"driver":     {Values: []string{config.DriverGotenberg, config.DriverLibreOffice, config.DriverChromium, config.DriverStencil, config.DriverFake}},
	"log-level":  {Values: []string{"debug", "info", "warn", "error"}},
	"log-format": {Values: []string{"console", "json"}},
	"config":     {Glob: "*.yaml,*.yml"},
	"data-file":  {Glob: "*.json"},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Bool:  f.Value.Type() == "bool",
			Desc:  f.Usage,
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			fd.Values = meta.Values
			fd.Glob = meta.Glob
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  cmdGenerate,
			Desc:  "Generate a PDF or DOCX from a template",
			Flags: extractFlagsFromFlagSet(buildGenerateFlagSet(&generateFlags{})),
			Files: "*.html,*.htm,*.md,*.markdown,*.docx,*.xlsx,*.pptx,*.odt",
		},
		{
			Name:  cmdStatus,
			Desc:  "Check driver availability",
			Flags: extractFlagsFromFlagSet(buildStatusFlagSet(&statusFlags{})),
		},
		{
			Name:  cmdConfig,
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(buildConfigFlagSet(&configFlags{})),
		},
		{Name: cmdCompletion, Desc: "Generate shell completion script"},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# bash completion for dokufy\n")
	b.WriteString("_dokufy_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"${prev}\" in\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if len(f.Values) > 0 {
				fmt.Fprintf(&b, "        --%s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;\n", f.Long, strings.Join(f.Values, " "))
			}
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && c.Name != cmdCompletion && c.Name != cmdHelp {
			continue
		}
		words := make([]string, 0, len(c.Flags))
		for _, f := range c.Flags {
			words = append(words, "--"+f.Long)
		}
		switch c.Name {
		case cmdCompletion:
			words = append(words, string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell))
		case cmdHelp:
			words = append(words, commandNames(cmds))
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(words, " "))
		if c.Files != "" {
			b.WriteString("            [[ ${cur} != -* ]] && COMPREPLY+=($(compgen -f -- \"${cur}\"))\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _dokufy_completions dokufy\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("#compdef dokufy\n\n")
	b.WriteString("_dokufy() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, c.Desc)
	}
	b.WriteString("    )\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			arg := fmt.Sprintf("--%s[%s]", f.Long, zshEscape(f.Desc))
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				arg += fmt.Sprintf(":value:(%s)", strings.Join(f.Values, " "))
			case f.Glob != "":
				arg += ":file:_files"
			default:
				arg += ":value:"
			}
			fmt.Fprintf(&b, "                '%s' \\\n", arg)
		}
		if c.Files != "" {
			b.WriteString("                '*:file:_files'\n")
		} else {
			b.WriteString("                && return\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("        completion)\n")
	b.WriteString("            _values 'shell' bash zsh fish powershell\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _dokufy dokufy\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func zshEscape(s string) string {
	r := strings.NewReplacer("[", "\\[", "]", "\\]", "'", "'\\''")
	return r.Replace(s)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# fish completion for dokufy\n")
	b.WriteString("function __fish_dokufy_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_dokufy_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c dokufy -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c dokufy -n __fish_dokufy_needs_command -a %s -d '%s'\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c dokufy -n '__fish_dokufy_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			if !f.Bool {
				line += " -r"
			}
			if len(f.Values) > 0 {
				line += fmt.Sprintf(" -a '%s'", strings.Join(f.Values, " "))
			}
			if f.Glob != "" {
				line += " -F"
			}
			line += fmt.Sprintf(" -d '%s'", strings.ReplaceAll(f.Desc, "'", "\\'"))
			b.WriteString(line + "\n")
		}
		if c.Files != "" {
			fmt.Fprintf(&b, "complete -c dokufy -n '__fish_dokufy_using_command %s' -F\n", c.Name)
		}
	}
	b.WriteString("complete -c dokufy -n '__fish_dokufy_using_command completion' -a 'bash zsh fish powershell'\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder
	b.WriteString("# PowerShell completion for dokufy\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName dokufy -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $completions = @{\n")
	for _, c := range cmds {
		words := make([]string, 0, len(c.Flags))
		for _, f := range c.Flags {
			words = append(words, "'--"+f.Long+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(words, ", "))
	}
	b.WriteString("    }\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $candidates = $completions.Keys\n")
	b.WriteString("    } else {\n")
	b.WriteString("        $candidates = $completions[$elements[1]]\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dokufy completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(dokufy completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(dokufy completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    dokufy completion fish > ~/.config/fish/completions/dokufy.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    dokufy completion powershell | Out-String | Invoke-Expression")
}
