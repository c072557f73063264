package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goessl/sumofradicals/internal/ui"
)

// Style variables for the TUI calculator.
// Initialized from the ui theme system via initTUIStyles().
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	versionStyle    lipgloss.Style
	promptStyle     lipgloss.Style
	exprStyle       lipgloss.Style
	resultStyle     lipgloss.Style
	annotationStyle lipgloss.Style
	errorStyle      lipgloss.Style
	statusStyle     lipgloss.Style
	statusOnStyle   lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all TUI styles from the current ui theme.
// Called at package init and again from Run() after InitTheme has been invoked.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	promptStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	exprStyle = lipgloss.NewStyle().
		Foreground(t.Info)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	annotationStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	statusStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusOnStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
