// Package style provides shared styling primitives for CLI output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Green = lipgloss.Color("#22A06B")
	Red   = lipgloss.Color("#D93025")
)

var (
	Fail    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Green)
)

// Icons.
const (
	Check = "✓"
	Cross = "✗"
)
