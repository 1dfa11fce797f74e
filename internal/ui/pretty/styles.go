// Package pretty provides the Lipgloss styles and layout helpers used by
// gedkit's terminal output.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gedkit/pkg/config"
)

// Styles holds the renderers for terminal output.
type Styles struct {
	Title   lipgloss.Style
	XRef    lipgloss.Style
	Tag     lipgloss.Style
	Name    lipgloss.Style
	Date    lipgloss.Style
	Place   lipgloss.Style
	Value   lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is off.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title: plain, XRef: plain, Tag: plain, Name: plain, Date: plain,
			Place: plain, Value: plain, Label: plain, Success: plain,
			Error: plain, Warning: plain, TableHeader: plain,
			TableSeparator: plain, Dim: plain, Bold: plain,
		}
	}
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Underline(true),
		XRef:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Name:    lipgloss.NewStyle().Bold(true),
		Date:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Place:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Value:   lipgloss.NewStyle(),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled resolves "auto", "always" or "never" for writer. In auto
// mode color needs a terminal and an unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	terminal := false
	if f, ok := writer.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return config.UseColor(config.ColorMode(mode), terminal)
}
