package logproblem

import (
	"context"
	"errors"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/ui/theme"
	"github.com/ascent-cf/ascent/internal/verify"
)

const (
	fieldID = iota
	fieldTime
)

// LogScreen records a solve the user picked themselves and triggers a
// full sync with the judge.
type LogScreen struct {
	owner   uuid.UUID
	svc     *verify.Service
	handle  handle.Handle
	machine *verify.Machine

	idInput   components.TextInput
	timeInput components.TextInput
	focus     int
	logButton components.Button

	syncing  bool
	toast    verify.Outcome
	hasToast bool
	inputErr string
	spinner  spinner.Model
}

var (
	_ screen.Screen          = (*LogScreen)(nil)
	_ screen.KeyHintProvider = (*LogScreen)(nil)
	_ screen.Closer          = (*LogScreen)(nil)
)

// New creates a LogScreen for h.
func New(svc *verify.Service, h handle.Handle, window time.Duration) *LogScreen {
	timeInput := components.NewTextInput("TIME SPENT (MINUTES)", "0", true, 5)
	timeInput.Blur()

	s := &LogScreen{
		owner:     uuid.New(),
		svc:       svc,
		handle:    h,
		machine:   verify.NewMachine(window),
		idInput:   components.NewTextInput("PROBLEM ID", "1500A", false, 12),
		timeInput: timeInput,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.logButton = components.NewButton("LOG SOLVE", false, s.submit)
	return s
}

func (s *LogScreen) Init() tea.Cmd {
	return s.idInput.Init()
}

func (s *LogScreen) Title() string {
	return "Log Problem"
}

// Close drops any result still in flight.
func (s *LogScreen) Close() {
	s.machine.Close()
}

func (s *LogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Log"},
		{Key: "Ctrl+S", Description: "Sync"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LogScreen) busy() bool {
	return s.machine.InFlight() || s.syncing
}

func (s *LogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedMsg:
		return s.handleLogged(msg)
	case syncedMsg:
		return s.handleSynced(msg)
	case resetMsg:
		if msg.owner == s.owner {
			s.machine.Reset(msg.token)
		}
		return s, nil
	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if _, ok := msg.(tea.PasteMsg); ok && s.machine.InFlight() {
		return s, nil
	}
	defer s.refreshButton()
	return s.updateFocused(msg)
}

func (s *LogScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return s, s.toggleFocus()
	case "enter":
		var cmd tea.Cmd
		s.logButton, cmd = s.logButton.Update(msg)
		// OnPress mutated the screen, not the copy Update returned.
		s.refreshButton()
		return s, cmd
	case "ctrl+s":
		return s.sync()
	}

	if s.machine.InFlight() {
		return s, nil
	}
	s.inputErr = ""
	s.machine.Retry()
	defer s.refreshButton()
	return s.updateFocused(msg)
}

// refreshButton enables logging only with an ID and no request in flight.
func (s *LogScreen) refreshButton() {
	s.logButton.Active = !s.machine.InFlight() && verify.NormalizeID(s.idInput.Value()) != ""
}

func (s *LogScreen) updateFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if s.focus == fieldID {
		s.idInput, cmd = s.idInput.Update(msg)
	} else {
		s.timeInput, cmd = s.timeInput.Update(msg)
	}
	return s, cmd
}

func (s *LogScreen) toggleFocus() tea.Cmd {
	if s.focus == fieldID {
		s.focus = fieldTime
		s.idInput.Blur()
		return s.timeInput.Focus()
	}
	s.focus = fieldID
	s.timeInput.Blur()
	return s.idInput.Focus()
}

func (s *LogScreen) submit() tea.Cmd {
	id := verify.NormalizeID(s.idInput.Value())
	minutes, err := verify.ParseMinutes(s.timeInput.Value())
	if err != nil {
		s.inputErr = err.Error()
		return nil
	}

	attempt, err := s.machine.Submit(verify.NewProblem(id, "", 0, nil), s.handle, minutes)
	if err != nil {
		if errors.Is(err, handle.ErrMissingHandle) {
			s.showToast(verify.MissingHandleOutcome())
		}
		return nil
	}
	s.inputErr = ""
	s.hasToast = false
	s.refreshButton()

	svc, owner, h := s.svc, s.owner, s.handle
	return tea.Batch(func() tea.Msg {
		o := svc.Verify(handle.WithHandle(context.Background(), h), verify.FlowManual, attempt.Request)
		return loggedMsg{owner: owner, attempt: attempt, outcome: o}
	}, s.spinner.Tick)
}

func (s *LogScreen) sync() (screen.Screen, tea.Cmd) {
	if s.syncing {
		return s, nil
	}
	s.syncing = true
	s.hasToast = false

	svc, owner, h := s.svc, s.owner, s.handle
	return s, tea.Batch(func() tea.Msg {
		o := svc.Sync(handle.WithHandle(context.Background(), h))
		return syncedMsg{owner: owner, outcome: o}
	}, s.spinner.Tick)
}

func (s *LogScreen) handleLogged(msg loggedMsg) (screen.Screen, tea.Cmd) {
	if msg.owner != s.owner {
		return s, nil
	}
	task, applied := s.machine.Resolve(msg.attempt, msg.outcome)
	if !applied {
		return s, nil
	}
	s.showToast(msg.outcome)
	if task == nil {
		s.refreshButton()
		return s, nil
	}

	s.idInput.Reset()
	s.timeInput.Reset()
	s.refreshButton()
	var focusCmd tea.Cmd
	if s.focus != fieldID {
		focusCmd = s.toggleFocus()
	}
	owner, token := s.owner, task.Token
	return s, tea.Batch(focusCmd, tea.Tick(task.After, func(time.Time) tea.Msg {
		return resetMsg{owner: owner, token: token}
	}))
}

func (s *LogScreen) handleSynced(msg syncedMsg) (screen.Screen, tea.Cmd) {
	if msg.owner != s.owner || s.machine.Closed() {
		return s, nil
	}
	s.syncing = false
	s.showToast(msg.outcome)
	return s, nil
}

func (s *LogScreen) showToast(o verify.Outcome) {
	s.toast = o
	s.hasToast = true
}

func (s *LogScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	lines := []string{
		theme.Title.Render("LOG A SOLVED PROBLEM"),
		theme.Subtitle.Render("Solved something off the ladder? Record it here."),
		"",
		s.idInput.View(),
		"",
		s.timeInput.View(),
		"",
	}

	switch {
	case s.machine.InFlight():
		lines = append(lines, s.spinner.View()+" "+theme.Body.Render("Logging…"))
	case s.syncing:
		lines = append(lines, s.spinner.View()+" "+theme.Body.Render("Syncing with Codeforces…"))
	case s.inputErr != "":
		lines = append(lines, theme.ErrorText.Render(s.inputErr))
	case s.hasToast:
		lines = append(lines, components.Toast(s.toast.Message, s.toast.Failed()))
	}

	syncButton := components.NewButton("SYNC", !s.syncing, nil)
	lines = append(lines, "", s.logButton.View()+"  "+syncButton.View())

	card := components.Card(strings.Join(lines, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
