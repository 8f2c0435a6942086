package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Record line components
	PromptTag lipgloss.Style
	Model     lipgloss.Style
	Image     lipgloss.Style
	Response  lipgloss.Style
	Error     lipgloss.Style

	// Summary table styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}{
	PromptTag: lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green
	Model:     lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
	Image:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Response:  lipgloss.NewStyle(),
	Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red bold

	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
}
