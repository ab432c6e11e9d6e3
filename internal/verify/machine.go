package verify

import (
	"errors"
	"time"

	"github.com/ascent-cf/ascent/internal/handle"
)

// DefaultSuccessWindow is how long a success is displayed before the
// machine returns to idle.
const DefaultSuccessWindow = 2 * time.Second

var (
	ErrBusy           = errors.New("a verification is already in flight")
	ErrNoProblem      = errors.New("no problem to verify")
	ErrEmptyProblemID = errors.New("problem id is empty")
	ErrClosed         = errors.New("verification closed")
)

// State is the verification state.
type State int

const (
	StateIdle       State = iota // Waiting for a submit
	StateSubmitting              // One request in flight
	StateSuccess                 // Accepted, showing confirmation
	StateFailed                  // Rejected, showing the classified error
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Attempt identifies one dispatched verification.
type Attempt struct {
	Seq     uint64
	Request SubmissionRequest
}

// ResetTask is the scheduled return to idle after a success. It is cancelled
// by any later transition; Reset ignores tokens that are no longer live.
type ResetTask struct {
	Token uint64
	After time.Duration
}

// Machine drives one verification form. It holds no goroutines and does no
// I/O: callers dispatch the request for the returned Attempt and feed the
// outcome back through Resolve.
type Machine struct {
	window       time.Duration
	state        State
	seq          uint64
	resetToken   uint64
	resetPending bool
	outcome      Outcome
	closed       bool
}

// NewMachine creates an idle machine. A non-positive window uses
// DefaultSuccessWindow.
func NewMachine(window time.Duration) *Machine {
	if window <= 0 {
		window = DefaultSuccessWindow
	}
	return &Machine{window: window}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Outcome returns the last applied outcome. It is zero while idle.
func (m *Machine) Outcome() Outcome { return m.outcome }

// InFlight reports whether a request is outstanding.
func (m *Machine) InFlight() bool { return m.state == StateSubmitting }

// Closed reports whether the machine's owner has gone away.
func (m *Machine) Closed() bool { return m.closed }

// Submit moves Idle to Submitting and returns the attempt to dispatch.
// On error the state is left untouched. Submitting from Failed is an
// implicit retry; submitting from Success cancels the pending reset.
func (m *Machine) Submit(p *Problem, h handle.Handle, minutes int) (Attempt, error) {
	switch {
	case m.closed:
		return Attempt{}, ErrClosed
	case m.state == StateSubmitting:
		return Attempt{}, ErrBusy
	case p == nil:
		return Attempt{}, ErrNoProblem
	case !h.Valid():
		return Attempt{}, handle.ErrMissingHandle
	case p.ID == "":
		return Attempt{}, ErrEmptyProblemID
	case minutes < 0:
		return Attempt{}, ErrInvalidMinutes
	}

	m.cancelReset()
	m.seq++
	m.state = StateSubmitting
	m.outcome = Outcome{}

	return Attempt{
		Seq: m.seq,
		Request: SubmissionRequest{
			ProblemID:        p.ID,
			TimeSpentMinutes: minutes,
		},
	}, nil
}

// Resolve applies the outcome of an attempt. Results for stale attempts or a
// closed machine are discarded and applied is false. On success the returned
// task must be scheduled to bring the machine back to idle.
func (m *Machine) Resolve(a Attempt, o Outcome) (task *ResetTask, applied bool) {
	if m.closed || m.state != StateSubmitting || a.Seq != m.seq {
		return nil, false
	}

	m.outcome = o
	if o.Kind != KindSuccess {
		m.state = StateFailed
		return nil, true
	}

	m.state = StateSuccess
	m.resetToken++
	m.resetPending = true
	return &ResetTask{Token: m.resetToken, After: m.window}, true
}

// Reset fires a scheduled reset. It reports whether the machine returned to
// idle.
func (m *Machine) Reset(token uint64) bool {
	if m.closed || !m.resetPending || token != m.resetToken || m.state != StateSuccess {
		return false
	}
	m.resetPending = false
	m.state = StateIdle
	m.outcome = Outcome{}
	return true
}

// Retry moves Failed back to Idle.
func (m *Machine) Retry() bool {
	if m.closed || m.state != StateFailed {
		return false
	}
	m.state = StateIdle
	m.outcome = Outcome{}
	return true
}

// Dismiss clears any displayed result and cancels a pending reset. It is
// refused while a request is in flight.
func (m *Machine) Dismiss() bool {
	if m.state == StateSubmitting {
		return false
	}
	m.cancelReset()
	m.state = StateIdle
	m.outcome = Outcome{}
	return true
}

// Close ends the machine's lifetime. Later results and resets are dropped.
func (m *Machine) Close() {
	m.closed = true
	m.cancelReset()
}

func (m *Machine) cancelReset() {
	if m.resetPending {
		m.resetPending = false
		m.resetToken++
	}
}
