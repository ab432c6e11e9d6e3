package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/ui/theme"
	"github.com/ascent-cf/ascent/internal/verify"
)

// pageSize is how many attempts the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.VerificationEvent
	Stats    store.Stats
	Err      error
}

// HistoryScreen lists the handle's recent verification attempts.
type HistoryScreen struct {
	eventRepo store.EventRepo
	handle    handle.Handle
	attempts  []store.VerificationEvent
	stats     store.Stats
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. A nil eventRepo shows an empty journal.
func New(eventRepo store.EventRepo, h handle.Handle) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		handle:    h,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, h := s.eventRepo, s.handle.String()
	return func() tea.Msg {
		if repo == nil {
			return historyLoadedMsg{}
		}
		ctx := context.Background()

		attempts, err := repo.QueryVerifications(ctx, store.QueryOpts{Limit: pageSize, Handle: h})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := repo.Stats(ctx, h)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: attempts, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.attempts = msg.Attempts
			s.stats = msg.Stats
			if s.selected >= len(s.attempts) {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "r":
			s.loaded = false
			s.expanded = make(map[int]bool)
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing tracked yet. Solve today's challenge!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderSummary(width)))
	b.WriteString("\n\n")

	for i, a := range s.attempts {
		dateStr := a.Timestamp.Local().Format("Jan 02 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s %-8s  %-9s  %3d min",
			prefix, dateStr, kindIcon(a.Kind), a.ProblemID, a.Flow, a.TimeSpentMinutes)

		style := lipgloss.NewStyle().Foreground(kindColor(a.Kind))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    %s  (%d ms)", a.Message, a.LatencyMs)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderSummary(width int) string {
	var percent float64
	if s.stats.Attempts > 0 {
		percent = float64(s.stats.Solved) / float64(s.stats.Attempts)
	}
	label := fmt.Sprintf("%d solved / %d attempts · %d min", s.stats.Solved, s.stats.Attempts, s.stats.TotalMinutes)
	return components.NewProgressBar(label, percent, true, components.ContentWidth(width)).View()
}

func kindIcon(kind string) string {
	switch kind {
	case verify.KindSuccess.String():
		return "✓"
	case verify.KindAlreadyTracked.String():
		return "="
	default:
		return "✗"
	}
}

func kindColor(kind string) color.Color {
	switch kind {
	case verify.KindSuccess.String():
		return theme.Success
	case verify.KindAlreadyTracked.String():
		return theme.Accent
	default:
		return theme.Error
	}
}
