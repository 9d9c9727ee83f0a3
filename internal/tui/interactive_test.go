package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/storage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func open(t *testing.T, m Model, name string) Model {
	t.Helper()
	for i, n := range m.names {
		if n == name {
			m.cursor = i
			return press(m, "enter")
		}
	}
	t.Fatalf("calculator %s not in menu", name)
	return m
}

func TestMenuNavigation(t *testing.T) {
	m := *NewInteractiveApp(calc.NewRegistry(), nil)

	if m.state != stateMenu {
		t.Fatalf("expected menu state, got %d", m.state)
	}
	m = press(m, "j", "j", "k")
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
	m = press(m, "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.cursor)
	}

	m = press(m, "enter")
	if m.state != stateConfig || m.selected == nil {
		t.Fatal("enter should open the parameter form")
	}
	if m.selected.Name != m.names[0] {
		t.Errorf("expected %s, got %s", m.names[0], m.selected.Name)
	}
}

func TestEditAndRun(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "pole")

	m = press(m, "enter", "backspace", "backspace", "backspace", "backspace", "1", ".", "5", "enter")
	if m.params["cut_width"] != 1.5 {
		t.Fatalf("expected cut_width 1.5, got %f", m.params["cut_width"])
	}

	m = press(m, "r")
	if m.state != stateResult {
		t.Fatal("r should run the calculator")
	}
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	q, ok := m.result.Quantity("radius (rounded)")
	if !ok || q.Value != 24 {
		t.Errorf("expected 24 cm, got %v", q)
	}
	if !strings.Contains(m.View(), "radius") {
		t.Error("result view should list quantities")
	}
}

func TestEditRejectsMalformedNumber(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "pole")

	m = press(m, "enter", "backspace", "backspace", "backspace", "backspace", "-", "-", "enter")
	if m.params["cut_width"] != 0.75 {
		t.Errorf("malformed edit should keep the old value, got %f", m.params["cut_width"])
	}
	if m.err == nil {
		t.Fatal("malformed edit should be reported")
	}
	if !strings.Contains(m.View(), "not a number") {
		t.Error("form should show the edit error")
	}

	m = press(m, "enter", "backspace", "backspace", "backspace", "backspace", "1", "enter")
	if m.err != nil || m.params["cut_width"] != 1 {
		t.Errorf("valid edit should clear the error, got %v and %f", m.err, m.params["cut_width"])
	}
}

func TestEditEscapeKeepsValue(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "pole")
	m = press(m, "enter", "9", "esc")
	if m.params["cut_width"] != 0.75 {
		t.Errorf("escape should discard the edit, got %f", m.params["cut_width"])
	}
	if m.editing {
		t.Error("should leave edit mode")
	}
}

func TestChoiceCycling(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "collider")

	for m.currentParam().Name != "setup" {
		m = press(m, "down")
	}
	m = press(m, "enter")
	if m.params["setup"] != 1 {
		t.Errorf("expected setup 1, got %f", m.params["setup"])
	}
	m = press(m, "l")
	if m.params["setup"] != 0 {
		t.Errorf("expected wrap to 0, got %f", m.params["setup"])
	}
	if !strings.Contains(m.View(), "fixed_target") {
		t.Error("choice should render by name")
	}
}

func TestNudgeAndDefault(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "slope")

	m = press(m, "l")
	if m.params["slope"] != 0.1 {
		t.Errorf("expected 0.1 from zero, got %f", m.params["slope"])
	}
	m = press(m, "d")
	if m.params["slope"] != 0 {
		t.Errorf("expected default 0, got %f", m.params["slope"])
	}
}

func TestErrorResult(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "projectile")
	m = press(m, "r")
	if m.err == nil {
		t.Fatal("default projectile target is out of reach")
	}
	if !strings.Contains(m.View(), "out of range") {
		t.Error("error should be shown")
	}

	m = press(m, "c")
	if m.state != stateConfig {
		t.Error("c should return to the form")
	}
}

func TestProjectileTrajectoryView(t *testing.T) {
	m := open(t, *NewInteractiveApp(calc.NewRegistry(), nil), "projectile")
	m.params["v0"] = 15
	m = press(m, "r")
	if m.err != nil {
		t.Fatal(m.err)
	}
	if !strings.Contains(m.View(), "✚") {
		t.Error("trajectory plot should mark the target")
	}
}

func TestSaveResult(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	m := open(t, *NewInteractiveApp(calc.NewRegistry(), st), "slope")
	m = press(m, "r", "s")
	if m.savedID == "" {
		t.Fatalf("expected a saved run, err=%v", m.err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != m.savedID {
		t.Errorf("expected run %s in history, got %v", m.savedID, runs)
	}

	// second save is a no-op
	m = press(m, "s")
	runs, _ = st.List()
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestQuit(t *testing.T) {
	m := *NewInteractiveApp(calc.NewRegistry(), nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}
