package challenge

import (
	"context"
	"errors"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/ui/components"
	"github.com/ascent-cf/ascent/internal/ui/layout"
	"github.com/ascent-cf/ascent/internal/verify"
)

// ChallengeScreen shows today's recommended problem and verifies the solve.
type ChallengeScreen struct {
	owner   uuid.UUID
	svc     *verify.Service
	handle  handle.Handle
	machine *verify.Machine

	loading bool
	problem *verify.Problem
	failure string

	modalOpen bool
	timeInput components.TextInput
	inputErr  string
	spinner   spinner.Model
}

var (
	_ screen.Screen          = (*ChallengeScreen)(nil)
	_ screen.KeyHintProvider = (*ChallengeScreen)(nil)
	_ screen.EscapeHandler   = (*ChallengeScreen)(nil)
	_ screen.Closer          = (*ChallengeScreen)(nil)
)

// New creates a ChallengeScreen for h. window is how long a success stays
// on screen before the modal closes.
func New(svc *verify.Service, h handle.Handle, window time.Duration) *ChallengeScreen {
	ti := components.NewTextInput("TIME SPENT (MINUTES, OPTIONAL)", "0", true, 5)
	ti.Blur()

	return &ChallengeScreen{
		owner:     uuid.New(),
		svc:       svc,
		handle:    h,
		machine:   verify.NewMachine(window),
		loading:   true,
		timeInput: ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *ChallengeScreen) Init() tea.Cmd {
	return tea.Batch(s.acquire(), s.spinner.Tick)
}

func (s *ChallengeScreen) Title() string {
	return "Daily Challenge"
}

// CapturesEscape keeps Esc inside the screen while the modal is open.
func (s *ChallengeScreen) CapturesEscape() bool {
	return s.modalOpen
}

// Close drops any result still in flight.
func (s *ChallengeScreen) Close() {
	s.machine.Close()
}

func (s *ChallengeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.modalOpen && s.machine.InFlight():
		return []layout.KeyHint{{Key: "", Description: "Verifying…"}}
	case s.modalOpen:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Verify"},
			{Key: "Esc", Description: "Close"},
		}
	case s.failure != "":
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.problem != nil:
		return []layout.KeyHint{
			{Key: "v", Description: "I solved it"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
}

func (s *ChallengeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemLoadedMsg:
		return s.handleProblemLoaded(msg)
	case verifiedMsg:
		return s.handleVerified(msg)
	case resetMsg:
		return s.handleReset(msg)
	case spinner.TickMsg:
		if !s.loading && !s.machine.InFlight() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.modalOpen {
		if _, ok := msg.(tea.PasteMsg); ok && s.machine.InFlight() {
			return s, nil
		}
		var cmd tea.Cmd
		s.timeInput, cmd = s.timeInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ChallengeScreen) handleProblemLoaded(msg problemLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.owner != s.owner || s.machine.Closed() {
		return s, nil
	}
	s.loading = false
	if msg.err != nil {
		var acqErr *verify.AcquisitionError
		if errors.As(msg.err, &acqErr) {
			s.failure = acqErr.Outcome().Message
		} else {
			s.failure = verify.MsgAcquisitionFailed
		}
		return s, nil
	}
	s.problem = msg.problem
	return s, nil
}

func (s *ChallengeScreen) handleVerified(msg verifiedMsg) (screen.Screen, tea.Cmd) {
	if msg.owner != s.owner {
		return s, nil
	}
	task, applied := s.machine.Resolve(msg.attempt, msg.outcome)
	if !applied {
		return s, nil
	}
	if task == nil {
		// Failed: let the user edit and press Enter to retry.
		return s, s.timeInput.Focus()
	}
	owner, token := s.owner, task.Token
	return s, tea.Tick(task.After, func(time.Time) tea.Msg {
		return resetMsg{owner: owner, token: token}
	})
}

func (s *ChallengeScreen) handleReset(msg resetMsg) (screen.Screen, tea.Cmd) {
	if msg.owner != s.owner {
		return s, nil
	}
	if s.machine.Reset(msg.token) {
		s.closeModal()
	}
	return s, nil
}

func (s *ChallengeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.modalOpen {
		switch key {
		case "esc":
			if s.machine.Dismiss() {
				s.closeModal()
			}
			return s, nil
		case "enter":
			return s.submit()
		}
		if s.machine.InFlight() {
			return s, nil
		}
		// Editing after a rejection clears it.
		s.machine.Retry()
		var cmd tea.Cmd
		s.timeInput, cmd = s.timeInput.Update(msg)
		s.inputErr = ""
		return s, cmd
	}

	switch key {
	case "r":
		if s.failure != "" {
			s.failure = ""
			s.loading = true
			return s, tea.Batch(s.acquire(), s.spinner.Tick)
		}
	case "v", "enter":
		if s.problem != nil && !s.loading {
			s.modalOpen = true
			return s, s.timeInput.Focus()
		}
	}
	return s, nil
}

func (s *ChallengeScreen) submit() (screen.Screen, tea.Cmd) {
	// A confirmed solve is left alone until the window closes the modal.
	if s.machine.State() == verify.StateSuccess {
		return s, nil
	}

	minutes, err := verify.ParseMinutes(s.timeInput.Value())
	if err != nil {
		s.inputErr = err.Error()
		return s, nil
	}

	attempt, err := s.machine.Submit(s.problem, s.handle, minutes)
	if err != nil {
		if errors.Is(err, handle.ErrMissingHandle) {
			s.inputErr = verify.MsgMissingHandle
		}
		return s, nil
	}
	s.inputErr = ""
	s.timeInput.Blur()
	return s, tea.Batch(s.verify(attempt), s.spinner.Tick)
}

func (s *ChallengeScreen) closeModal() {
	s.modalOpen = false
	s.inputErr = ""
	s.timeInput.Reset()
	s.timeInput.Blur()
}

func (s *ChallengeScreen) acquire() tea.Cmd {
	svc, owner, h := s.svc, s.owner, s.handle
	return func() tea.Msg {
		p, err := svc.Acquire(handle.WithHandle(context.Background(), h))
		return problemLoadedMsg{owner: owner, problem: p, err: err}
	}
}

func (s *ChallengeScreen) verify(a verify.Attempt) tea.Cmd {
	svc, owner, h := s.svc, s.owner, s.handle
	return func() tea.Msg {
		o := svc.Verify(handle.WithHandle(context.Background(), h), verify.FlowChallenge, a.Request)
		return verifiedMsg{owner: owner, attempt: a, outcome: o}
	}
}
