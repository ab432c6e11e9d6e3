package components

import (
	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections so
// boxes line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Frame wraps content in a double border, centered in the given area.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// Toast renders a one-line status message, error-styled when failed.
func Toast(msg string, failed bool) string {
	if msg == "" {
		return ""
	}
	if failed {
		return theme.ErrorText.Render("✗ " + msg)
	}
	return theme.SuccessText.Render("✓ " + msg)
}
