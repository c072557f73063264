// Package tui implements the full-screen terminal calculator. It is a
// bubbletea program wrapping the expression parser: a single input line,
// a scrollback of evaluated expressions and a status line with display
// toggles and system load.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goessl/sumofradicals/internal/parser"
	"github.com/goessl/sumofradicals/internal/radical"
	"github.com/goessl/sumofradicals/internal/sysmon"
)

const (
	// historyLimit caps the scrollback length.
	historyLimit = 200
	// sysTickInterval is the system stats sampling period.
	sysTickInterval = 2 * time.Second
)

// entry is one evaluated line in the scrollback.
type entry struct {
	expr     string
	value    radical.Value
	err      error
	duration time.Duration
}

// TickMsg drives periodic system stats sampling.
type TickMsg time.Time

// SysStatsMsg carries a system load snapshot.
type SysStatsMsg sysmon.Stats

// evalDoneMsg carries a finished evaluation back into the event loop.
type evalDoneMsg entry

// Model is the root bubbletea model for the calculator.
type Model struct {
	input   textinput.Model
	help    help.Model
	keymap  KeyMap
	history []entry

	showLatex bool
	showFloat bool
	showHelp  bool
	sys       sysmon.Stats

	width  int
	height int

	version string
}

// NewModel creates a new calculator model.
func NewModel(version string) Model {
	input := textinput.New()
	input.Placeholder = "(1+sqrt(2))^3"
	input.Prompt = "rad> "
	input.PromptStyle = promptStyle
	input.Focus()

	return Model{
		input:   input,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		version: version,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// tickCmd schedules the next system stats sample.
func tickCmd() tea.Cmd {
	return tea.Tick(sysTickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd samples system load off the event loop.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}

// evalCmd evaluates an expression off the event loop.
func evalCmd(src string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		v, err := parser.Parse(src)
		return evalDoneMsg{expr: src, value: v, err: err, duration: time.Since(start)}
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.sys = sysmon.Stats(msg)
		return m, nil

	case evalDoneMsg:
		m.history = append(m.history, entry(msg))
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Submit):
		src := strings.TrimSpace(m.input.Value())
		if src == "" {
			return m, nil
		}
		m.input.Reset()
		return m, evalCmd(src)

	case key.Matches(msg, m.keymap.ToggleLatex):
		m.showLatex = !m.showLatex
		return m, nil

	case key.Matches(msg, m.keymap.ToggleFloat):
		m.showFloat = !m.showFloat
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history = nil
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the calculator.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("√ Radical Calculator"))
	b.WriteString(" ")
	b.WriteString(versionStyle.Render(m.version))
	b.WriteString("\n\n")

	for _, e := range m.visibleHistory() {
		b.WriteString(m.renderEntry(e))
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))

	if m.width > 0 {
		return panelStyle.Width(m.width - 2).Render(b.String())
	}
	return b.String()
}

// visibleHistory returns the tail of the scrollback that fits the window.
func (m Model) visibleHistory() []entry {
	if m.height == 0 {
		return m.history
	}
	// Rough budget: each entry takes up to 2 lines plus optional renderings.
	perEntry := 2
	if m.showLatex {
		perEntry++
	}
	if m.showFloat {
		perEntry++
	}
	budget := (m.height - 8) / perEntry
	if budget < 1 {
		budget = 1
	}
	if len(m.history) > budget {
		return m.history[len(m.history)-budget:]
	}
	return m.history
}

// renderEntry renders one scrollback entry.
func (m Model) renderEntry(e entry) string {
	var b strings.Builder
	b.WriteString(exprStyle.Render(e.expr))
	b.WriteString("\n")
	if e.err != nil {
		b.WriteString(errorStyle.Render("  ✗ " + e.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(resultStyle.Render("  = " + e.value.String()))
	b.WriteString("\n")
	if m.showLatex {
		b.WriteString(annotationStyle.Render("  latex: " + e.value.Latex()))
		b.WriteString("\n")
	}
	if m.showFloat {
		b.WriteString(annotationStyle.Render(fmt.Sprintf("  ≈ %.12g", e.value.Float64())))
		b.WriteString("\n")
	}
	return b.String()
}

// statusLine renders the toggle and system load summary.
func (m Model) statusLine() string {
	onOff := func(on bool, label string) string {
		if on {
			return statusOnStyle.Render(label + ":on")
		}
		return statusStyle.Render(label + ":off")
	}
	sys := statusStyle.Render(m.sys.String())
	return lipgloss.JoinHorizontal(lipgloss.Top,
		onOff(m.showLatex, "latex"), "  ",
		onOff(m.showFloat, "float"), "  ",
		sys)
}

// Run starts the calculator and blocks until it exits.
//
// Parameters:
//   - ctx: The context bounding the session.
//   - version: The version string shown in the header.
//
// Returns:
//   - error: Any error from the bubbletea program.
func Run(ctx context.Context, version string) error {
	initTUIStyles()
	p := tea.NewProgram(NewModel(version), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
