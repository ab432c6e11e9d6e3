package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	revealAfter  = 500 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen shows the banner and asks for the judge handle.
type WelcomeScreen struct {
	input     components.TextInput
	elapsed   time.Duration
	errMsg    string
	submitted bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New() *WelcomeScreen {
	return &WelcomeScreen{
		input: components.NewTextInput("CODEFORCES HANDLE", "tourist", false, 24),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Log in"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.input.Init(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.elapsed += tickInterval
		if w.elapsed < revealAfter {
			return w, tick()
		}
		return w, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return w, w.login()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	if _, ok := msg.(tea.KeyPressMsg); ok {
		w.errMsg = ""
	}
	return w, cmd
}

func (w *WelcomeScreen) login() tea.Cmd {
	if w.submitted {
		return nil
	}
	h := handle.Normalize(w.input.Value())
	if !h.Valid() {
		w.errMsg = "Enter your Codeforces handle to continue."
		return nil
	}
	w.submitted = true
	return func() tea.Msg {
		return screen.LoginMsg{Handle: h}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{RenderBanner(width)}

	if w.elapsed >= revealAfter {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Climb the ladder one verified solve at a time."),
			"",
			w.input.View(),
		)
		if w.errMsg != "" {
			sections = append(sections, "", theme.ErrorText.Render(w.errMsg))
		}
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
