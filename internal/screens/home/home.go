package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/router"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/screens/challenge"
	"github.com/ascent-cf/ascent/internal/screens/history"
	"github.com/ascent-cf/ascent/internal/screens/logproblem"
	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/verify"
)

// Deps holds what the home screen needs to build the screens it opens.
type Deps struct {
	Service       *verify.Service
	Events        store.EventRepo
	Handle        handle.Handle
	SuccessWindow time.Duration
}

// recentLimit is how many acquired problems the dashboard lists.
const recentLimit = 3

type dashboardLoadedMsg struct {
	stats  store.Stats
	recent []store.ProblemEvent
	err    error
}

// HomeScreen is the dashboard shown after login.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	stats  *store.Stats
	recent []store.ProblemEvent
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "CHALLENGE", Hint: "Solve today's recommended problem", Action: func() tea.Cmd {
			return push(challenge.New(deps.Service, deps.Handle, deps.SuccessWindow))
		}},
		{Label: "LOG PROBLEM", Hint: "Record a solve or sync with Codeforces", Action: func() tea.Cmd {
			return push(logproblem.New(deps.Service, deps.Handle, deps.SuccessWindow))
		}},
		{Label: "HISTORY", Hint: "Review your recent attempts", Action: func() tea.Cmd {
			return push(history.New(deps.Events, deps.Handle))
		}},
		{Label: "LOGOUT", Hint: "Switch to another handle", Action: func() tea.Cmd {
			return func() tea.Msg { return screen.LogoutMsg{} }
		}},
		{Label: "EXIT", Hint: "Quit Ascent", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

func (h *HomeScreen) loadDashboard() tea.Cmd {
	events, hd := h.deps.Events, h.deps.Handle
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := events.Stats(ctx, hd.String())
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		recent, err := events.RecentProblems(ctx, store.QueryOpts{Handle: hd.String(), Limit: recentLimit})
		return dashboardLoadedMsg{stats: stats, recent: recent, err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		if msg.err == nil {
			h.stats = &msg.stats
			h.recent = msg.recent
		}
		return h, nil
	case screen.ResumedMsg:
		return h, h.loadDashboard()
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header and footer
	termHeight := height + layout.HeaderHeight + layout.FooterHeight
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.deps.Events != nil {
		sections = append(sections, renderStatsBar(h.stats, cw, compact))
	}
	if compact {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		if len(h.recent) > 0 {
			sections = append(sections, renderRecent(h.recent, cw))
		}
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
