package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type pressedMsg struct{}

func TestMenuNavigation(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Action: func() tea.Cmd { return func() tea.Msg { return pressedMsg{} } }},
	})
	if m.Selected != 1 {
		t.Fatalf("expected first enabled item selected, got %d", m.Selected)
	}

	m, _ = m.Update(specialKey(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("disabled item must not be selectable, got %d", m.Selected)
	}

	m, _ = m.Update(keyPress('j'))
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected action command")
	}
	if _, ok := cmd().(pressedMsg); !ok {
		t.Error("expected the selected item's action to run")
	}
}

func TestMenuHintAndView(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "ONE", Hint: "first"},
		{Label: "TWO", Hint: "second", Disabled: true},
		{Label: "THREE"},
	})
	if m.Hint() != "first" {
		t.Errorf("Hint() = %q, want first", m.Hint())
	}

	m, _ = m.Update(specialKey(tea.KeyDown))
	if item, ok := m.Current(); !ok || item.Label != "THREE" {
		t.Errorf("Current() = %q, %v, want THREE", item.Label, ok)
	}
	if m.Hint() != "" {
		t.Errorf("Hint() = %q, want empty", m.Hint())
	}

	view := m.View()
	if !strings.Contains(view, "▸ THREE") {
		t.Error("expected cursor on THREE")
	}
	if strings.Contains(view, "▸ ONE") {
		t.Error("cursor must not stay on ONE")
	}
	if got := strings.Count(view, "\n"); got != 2 {
		t.Errorf("expected 3 lines, got %d newlines", got+1)
	}
}

func TestMenuEmpty(t *testing.T) {
	m := NewMenu(nil)
	if _, ok := m.Current(); ok {
		t.Error("empty menu has no current item")
	}
	if _, cmd := m.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("empty menu must not produce a command")
	}
}

func TestNumericTextInput(t *testing.T) {
	ti := NewTextInput("MINUTES", "", true, 5)
	for _, r := range "1a2" {
		ti, _ = ti.Update(keyPress(r))
	}
	if ti.Value() != "12" {
		t.Errorf("Value() = %q, want 12", ti.Value())
	}
	n, err := ti.NumericValue()
	if err != nil || n != 12 {
		t.Errorf("NumericValue() = %d, %v", n, err)
	}

	ti.Reset()
	if ti.Value() != "" {
		t.Error("expected Reset to clear the value")
	}
	if !strings.Contains(ti.View(), "MINUTES") {
		t.Error("expected label in view")
	}
}

func TestButton(t *testing.T) {
	pressed := 0
	b := NewButton("GO", false, func() tea.Cmd { pressed++; return nil })

	b, _ = b.Update(specialKey(tea.KeyEnter))
	if pressed != 0 {
		t.Error("inactive button must not fire")
	}

	b.Active = true
	b.Update(specialKey(tea.KeyEnter))
	if pressed != 1 {
		t.Errorf("expected one press, got %d", pressed)
	}
	if !strings.Contains(b.View(), "▸ GO") {
		t.Error("active button should show the pointer")
	}
}

func TestToast(t *testing.T) {
	if Toast("", true) != "" {
		t.Error("empty message renders nothing")
	}
	if !strings.Contains(Toast("saved", false), "✓ saved") {
		t.Error("expected success marker")
	}
	if !strings.Contains(Toast("nope", true), "✗ nope") {
		t.Error("expected failure marker")
	}
}

func TestContentWidthBounds(t *testing.T) {
	tests := []struct{ in, want int }{
		{10, 20},
		{50, 44},
		{200, 64},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
