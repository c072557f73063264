package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestModel_SubmitEvaluates(t *testing.T) {
	m := NewModel("test")
	m = typeString(m, "sqrt(8)")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("submit should produce an evaluation command")
	}

	msg := cmd()
	done, ok := msg.(evalDoneMsg)
	if !ok {
		t.Fatalf("command produced %T, want evalDoneMsg", msg)
	}
	if done.err != nil {
		t.Fatalf("evaluation error = %v", done.err)
	}
	if got := done.value.String(); got != "2√2" {
		t.Errorf("result = %s, want 2√2", got)
	}

	next, _ = m.Update(msg)
	m = next.(Model)
	if len(m.history) != 1 {
		t.Fatalf("history length = %d, want 1", len(m.history))
	}
	if !strings.Contains(m.View(), "2√2") {
		t.Error("view does not show the result")
	}
}

func TestModel_EmptySubmitIgnored(t *testing.T) {
	m := NewModel("test")
	_, cmd := m.Update(keyMsg("enter"))
	if cmd != nil {
		t.Error("empty submit should not produce a command")
	}
}

func TestModel_ErrorShownInHistory(t *testing.T) {
	m := NewModel("test")
	m = typeString(m, "1/(")
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	next, _ = m.Update(cmd())
	m = next.(Model)

	if len(m.history) != 1 || m.history[0].err == nil {
		t.Fatal("failed evaluation should land in history with its error")
	}
	if !strings.Contains(m.View(), "✗") {
		t.Error("view does not flag the error")
	}
}

func TestModel_Toggles(t *testing.T) {
	m := NewModel("test")

	next, _ := m.Update(keyMsg("ctrl+l"))
	m = next.(Model)
	if !m.showLatex {
		t.Error("ctrl+l should enable latex display")
	}

	next, _ = m.Update(keyMsg("ctrl+f"))
	m = next.(Model)
	if !m.showFloat {
		t.Error("ctrl+f should enable float display")
	}
}

func TestModel_ClearHistory(t *testing.T) {
	m := NewModel("test")
	m = typeString(m, "1+1")
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)

	next, _ = m.Update(keyMsg("ctrl+u"))
	m = next.(Model)
	if len(m.history) != 0 {
		t.Errorf("history length after clear = %d, want 0", len(m.history))
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := NewModel("test")
	_, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("esc produced %v, want tea.Quit", msg)
	}
}

func TestModel_HistoryLimit(t *testing.T) {
	m := NewModel("test")
	for i := 0; i < historyLimit+10; i++ {
		next, _ := m.Update(evalDoneMsg{expr: "1"})
		m = next.(Model)
	}
	if len(m.history) != historyLimit {
		t.Errorf("history length = %d, want cap %d", len(m.history), historyLimit)
	}
}
