package tui

import (
	"strings"
	"testing"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m model, s string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(model)
}

func press(m model, t tea.KeyType) (model, tea.Cmd) {
	next, cmd := m.Update(key(t))
	return next.(model), cmd
}

func fill(m model, length, load, position string) model {
	m = typeText(m, length)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, load)
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, position)
	return m
}

func TestTypingUpdatesState(t *testing.T) {
	m := fill(newModel(Deps{}), "10", "100", "5")

	want := state.Inputs{Length: "10", Load: "100", Position: "5"}
	if m.st.Inputs != want {
		t.Fatalf("inputs = %+v, want %+v", m.st.Inputs, want)
	}
	if m.st.Phase() != state.PhaseIdle {
		t.Fatalf("phase = %v before enter", m.st.Phase())
	}
}

func TestEnterCalculates(t *testing.T) {
	m := fill(newModel(Deps{}), "10", "100", "5")
	m, _ = press(m, tea.KeyEnter)

	if m.st.Phase() != state.PhaseResult {
		t.Fatalf("phase = %v, err = %q", m.st.Phase(), m.st.Err)
	}
	view := m.View()
	for _, s := range []string{"50.00 N", "247.47 Nm", "Shear Force Diagram", "Bending Moment Diagram"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}
}

func TestInvalidInputShowsMessage(t *testing.T) {
	m := fill(newModel(Deps{}), "10", "100", "11")
	m, _ = press(m, tea.KeyEnter)

	if m.st.Phase() != state.PhaseIdle {
		t.Fatalf("phase = %v", m.st.Phase())
	}
	if !strings.Contains(m.View(), beam.InvalidInputMessage) {
		t.Fatal("view missing invalid input message")
	}
	if strings.Contains(m.View(), "Shear Force Diagram") {
		t.Fatal("diagram shown for invalid input")
	}
}

func TestInvalidAfterValidDiscardsResult(t *testing.T) {
	m := newModel(Deps{Length: "10", Load: "100", Position: "5"})
	m, _ = press(m, tea.KeyEnter)
	if m.st.Result == nil {
		t.Fatal("expected a result")
	}

	m, _ = press(m, tea.KeyShiftTab) // wraps to position
	m = typeText(m, "99")            // position now past the span
	m, _ = press(m, tea.KeyEnter)
	if m.st.Result != nil || m.st.Err != beam.InvalidInputMessage {
		t.Fatalf("state = %+v", m.st)
	}
}

func TestDepsPrefillInputs(t *testing.T) {
	m := newModel(Deps{Length: "6", Load: "30", Position: "0"})
	if m.inputs[fieldLoad].Value() != "30" {
		t.Fatalf("load input = %q", m.inputs[fieldLoad].Value())
	}
	m, _ = press(m, tea.KeyEnter)
	if m.st.Result == nil || m.st.Result.MaxShear != "0.00" {
		t.Fatalf("state = %+v", m.st)
	}
}

func TestFocusWraps(t *testing.T) {
	m := newModel(Deps{})
	m, _ = press(m, tea.KeyShiftTab)
	if m.focus != fieldPosition {
		t.Fatalf("focus = %d", m.focus)
	}
	m, _ = press(m, tea.KeyTab)
	if m.focus != fieldLength {
		t.Fatalf("focus = %d", m.focus)
	}
	if !m.inputs[fieldLength].Focused() || m.inputs[fieldPosition].Focused() {
		t.Fatal("focus flags out of sync")
	}
}

func TestResetClearsEverything(t *testing.T) {
	m := newModel(Deps{Length: "10", Load: "100", Position: "5"})
	m, _ = press(m, tea.KeyEnter)
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyCtrlR)

	if m.st != state.Initial() {
		t.Fatalf("state = %+v", m.st)
	}
	if m.focus != fieldLength || m.inputs[fieldLength].Value() != "" {
		t.Fatal("inputs not reset")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := press(newModel(Deps{}), k)
		if cmd == nil {
			t.Fatalf("%v: no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%v: expected quit", k)
		}
	}
}

func TestSafeModelDelegates(t *testing.T) {
	s := wrapSafe(newModel(Deps{Length: "8", Load: "40", Position: "8"}), nil)
	next, _ := s.Update(key(tea.KeyEnter))
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("got %T", next)
	}
	if sm.m.st.Result == nil || sm.m.st.Result.MaxShear != "40.00" {
		t.Fatalf("state = %+v", sm.m.st)
	}
	if !strings.Contains(sm.View(), "40.00 N") {
		t.Fatal("view missing max shear")
	}
}
