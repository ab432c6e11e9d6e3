package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Hint is a short description shown for
// the selected entry.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that skips disabled entries.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.next(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// next returns the first enabled index after from in direction dir, or -1.
func (m Menu) next(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

// Update moves the cursor with up/down (or k/j) and runs the selected
// action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if i := m.next(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.next(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if item, ok := m.Current(); ok && item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}

	return m, nil
}

// Current returns the selected item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Hint returns the selected item's hint, if any.
func (m Menu) Hint() string {
	item, _ := m.Current()
	return item.Hint
}

// View renders one line per item. The selected line is highlighted and
// disabled lines are dimmed.
func (m Menu) View() string {
	selected := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(theme.Text)
	disabled := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			lines[i] = selected.Render(" ▸ " + item.Label + " ")
		case item.Disabled:
			lines[i] = disabled.Render("   " + item.Label)
		default:
			lines[i] = normal.Render("   " + item.Label)
		}
	}
	return strings.Join(lines, "\n")
}
