package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/router"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/screens/home"
	"github.com/ascent-cf/ascent/internal/screens/welcome"
	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/verify"
)

// Options configures the interactive tracker.
type Options struct {
	Service       *verify.Service
	Events        store.EventRepo
	Handle        handle.Handle // empty starts at the login screen
	SuccessWindow time.Duration
	Logger        *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	handle handle.Handle
	router *router.Router
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates the root model. It opens on the home screen when a
// handle is already known and on login otherwise.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := AppModel{
		opts:   opts,
		handle: opts.Handle,
		logger: logger.Named("app"),
	}
	if m.handle.Valid() {
		m.router = router.New(m.homeScreen())
	} else {
		m.router = router.New(welcome.New())
	}
	return m
}

func (m AppModel) homeScreen() screen.Screen {
	return home.New(home.Deps{
		Service:       m.opts.Service,
		Events:        m.opts.Events,
		Handle:        m.handle,
		SuccessWindow: m.opts.SuccessWindow,
	})
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.LoginMsg:
		m.handle = msg.Handle
		m.logger.Info("login", zap.String("handle", m.handle.String()))
		return m, m.router.Reset(m.homeScreen())

	case screen.LogoutMsg:
		m.logger.Info("logout", zap.String("handle", m.handle.String()))
		m.handle = ""
		return m, m.router.Reset(welcome.New())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if eh, ok := m.router.Active().(screen.EscapeHandler); ok && eh.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.handle.String(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
