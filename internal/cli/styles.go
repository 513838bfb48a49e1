// Package cli holds the lipgloss styles and printers used by bathvox.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#3FA7D6") // bath-tile blue
	accentColor  = lipgloss.Color("#F6C445") // rubber-duck yellow
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
	errorColor   = lipgloss.Color("#D7263D")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	EnabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00"))

	DisabledStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)

// Title renders a section title.
func Title(text string) string {
	return TitleStyle.Render(text)
}

// KeyValue renders one "key: value" line without a trailing newline.
func KeyValue(key string, value any) string {
	return fmt.Sprintf("%s %s", KeyStyle.Render(key+":"), ValueStyle.Render(fmt.Sprint(value)))
}

// PrintKeyValues writes pairs of keys and values to w, one per line.
// A trailing key without a value is ignored.
func PrintKeyValues(w io.Writer, pairs ...any) {
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintln(w, KeyValue(fmt.Sprint(pairs[i]), pairs[i+1]))
	}
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// ModuleRow is one line of the module table.
type ModuleRow struct {
	Name    string
	Enabled bool
	Mix     float64
	Latency int
}

// ModuleTable renders rows as an aligned table.
func ModuleTable(rows []ModuleRow) string {
	width := len("Module")
	for _, r := range rows {
		width = max(width, len(r.Name))
	}

	var sb strings.Builder

	header := fmt.Sprintf("%-*s  %-8s  %5s  %8s", width, "Module", "State", "Mix", "Latency")
	sb.WriteString(HeaderStyle.Render(header))
	sb.WriteString("\n")

	for _, r := range rows {
		state := DisabledStyle.Render(fmt.Sprintf("%-8s", "off"))
		if r.Enabled {
			state = EnabledStyle.Render(fmt.Sprintf("%-8s", "on"))
		}

		fmt.Fprintf(&sb, "%-*s  %s  %5.2f  %8d\n", width, r.Name, state, r.Mix, r.Latency)
	}

	return sb.String()
}
