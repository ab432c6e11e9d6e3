package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/theme"
	"github.com/ascent-cf/ascent/internal/verify"
)

const titleFull = `▄▀█ █▀ █▀▀ █▀▀ █▄░█ ▀█▀
█▀█ ▄█ █▄▄ ██▄ █░▀█ ░█░`

const titleCompact = "A · S · C · E · N · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the journal totals in a bordered box matching
// content width. A nil stats renders placeholders while loading.
func renderStatsBar(stats *store.Stats, cw int, compact bool) string {
	solvedStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	minutesStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	syncStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case stats == nil:
		text = dimStyle.Render("loading stats…")
	case compact:
		text = fmt.Sprintf("%s %s %s",
			solvedStyle.Render(fmt.Sprintf("✓%d", stats.Solved)),
			minutesStyle.Render(fmt.Sprintf("⏱%d", stats.TotalMinutes)),
			syncText(stats.LastSync, true, syncStyle, dimStyle),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			solvedStyle.Render(fmt.Sprintf("✓ %d SOLVED", stats.Solved)),
			minutesStyle.Render(fmt.Sprintf("⏱ %d MIN", stats.TotalMinutes)),
			syncText(stats.LastSync, false, syncStyle, dimStyle),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func syncText(last time.Time, compact bool, active, dim lipgloss.Style) string {
	if last.IsZero() {
		if compact {
			return dim.Render("⟳–")
		}
		return dim.Render("⟳ NEVER SYNCED")
	}
	ago := humanizeSince(time.Since(last))
	if compact {
		return active.Render("⟳" + ago)
	}
	return active.Render("⟳ SYNCED " + strings.ToUpper(ago) + " AGO")
}

func humanizeSince(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// renderRecent lists the most recently acquired problems.
func renderRecent(recent []store.ProblemEvent, cw int) string {
	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("RECENT CHALLENGES")
	lines := []string{header}
	for _, p := range recent {
		line := lipgloss.NewStyle().Foreground(theme.Text).Render(p.ProblemID)
		if p.Name != "" {
			line += "  " + p.Name
		}
		if p.Rating > 0 {
			line += "  " + lipgloss.NewStyle().
				Foreground(theme.BandColor(string(verify.RatingBand(p.Rating)))).
				Render(fmt.Sprintf("★ %d", p.Rating))
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each enabled menu item as a fixed-width button, with
// the selected item's hint underneath.
func renderMenu(menu components.Menu, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, item := range menu.Items {
		switch {
		case i == menu.Selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+item.Label))
		case item.Disabled:
			continue
		default:
			buttons = append(buttons, normalBtn.Render(item.Label))
		}
	}
	if hint := menu.Hint(); hint != "" {
		buttons = append(buttons, theme.Hint.Render(hint))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders the plain menu list for small terminals where
// bordered buttons would overflow.
func renderMenuCompact(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(menu.View())
}
