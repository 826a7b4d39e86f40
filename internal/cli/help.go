// Package cli provides the Cobra command structure for gramlint.
package cli

import (
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gramlint/internal/ui/pretty"
)

// usageTemplate renders the Usage/Commands/Flags sections of help output.
// Style functions come from the formatter's func map.
const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// helpTemplate prefixes the usage sections with the command path and long
// description.
const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// helpPalette holds the styles the help templates draw with.
type helpPalette struct {
	command    lipgloss.Style
	heading    lipgloss.Style
	subcommand lipgloss.Style
	flag       lipgloss.Style
	example    lipgloss.Style
	dim        lipgloss.Style
}

func newHelpPalette(colorEnabled bool) helpPalette {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpPalette{
			command:    plain,
			heading:    plain,
			subcommand: plain,
			flag:       plain,
			example:    plain,
			dim:        plain,
		}
	}
	return helpPalette{
		command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage output for Cobra commands.
type HelpFormatter struct {
	palette helpPalette
	usage   *template.Template
	help    *template.Template
}

// NewHelpFormatter creates a help formatter for the given color mode. The
// writer decides whether color sticks (TTY probe, NO_COLOR).
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{
		palette: newHelpPalette(pretty.IsColorEnabled(colorMode, writer)),
	}

	funcs := template.FuncMap{
		"styleCommand":    h.palette.command.Render,
		"styleHeading":    h.palette.heading.Render,
		"styleSubcommand": h.palette.subcommand.Render,
		"styleExample":    h.palette.example.Render,
		"styleDim":        h.palette.dim.Render,
		"styleFlags":      h.styleFlags,
		"join":            strings.Join,
		"rpad":            rpad,
		"trim":            trimTrailingSpace,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	return h
}

// ApplyToCommand installs the styled help and usage renderers on the
// command tree.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.usage.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// styleFlags restyles pflag's FlagUsages output line by line: flag tokens
// in the flag color, type hints dimmed, descriptions untouched.
func (h *HelpFormatter) styleFlags(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := splitUsageLine(trimmed)
	if !ok {
		return line
	}

	var styled strings.Builder
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			styled.WriteString(" ")
		}
		switch {
		case strings.HasPrefix(token, "-"):
			// Keep a trailing comma ("-l,") outside the styled span.
			name := strings.TrimSuffix(token, ",")
			styled.WriteString(h.palette.flag.Render(name))
			styled.WriteString(token[len(name):])
		default:
			styled.WriteString(h.palette.dim.Render(token))
		}
	}

	return indent + styled.String() + "   " + desc
}

// splitUsageLine divides a flag usage line at the first run of two or more
// spaces, which is where pflag starts the aligned description column.
func splitUsageLine(line string) (flagPart, desc string, ok bool) {
	gap := -1
	run := 0
	for i, r := range line {
		if r == ' ' {
			if run == 0 {
				gap = i
			}
			run++
			continue
		}
		if run >= 2 && gap > 0 {
			return strings.TrimRight(line[:gap], " "), line[i:], true
		}
		run = 0
	}
	return "", "", false
}

// rpad pads a string to the given width for aligned command listings.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingSpace strips trailing whitespace from every line.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
