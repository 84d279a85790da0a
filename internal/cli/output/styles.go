package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for status output.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds styles bound to w. Without a terminal the color
// profile is plain ASCII so no escape sequences are written.
func NewStyles(w io.Writer, isTTY bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !isTTY {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Success: lr.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Muted:   lr.NewStyle().Faint(true),
		Prompt:  lr.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
