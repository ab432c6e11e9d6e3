package challenge

import (
	"net/http"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ascent-cf/ascent/internal/backend"
	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/verify"
)

const testWindow = 10 * time.Millisecond

var dailyProblem = &backend.DailyProblem{
	ID:     "1500A",
	Name:   "Going Home",
	Rating: 1300,
	Tags:   []string{"hashing"},
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func rejection(body string) error {
	return &backend.StatusError{Op: backend.OpSubmit, StatusCode: http.StatusBadRequest, Body: body}
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findVerified(t *testing.T, cmd tea.Cmd) verifiedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if v, ok := msg.(verifiedMsg); ok {
			return v
		}
	}
	t.Fatal("no verification was dispatched")
	return verifiedMsg{}
}

func newLoaded(t *testing.T, mock *backend.MockClient) *ChallengeScreen {
	t.Helper()
	mock.QueueDaily(backend.MockResponse{Problem: dailyProblem})
	svc := verify.NewService(mock, nil, zap.NewNop())
	s := New(svc, handle.Handle("tourist"), testWindow)
	s.Update(s.acquire()())
	require.NotNil(t, s.problem)
	return s
}

func TestProblemCard(t *testing.T) {
	s := newLoaded(t, backend.NewMockClient())

	view := s.View(100, 30)
	assert.Contains(t, view, "1500A")
	assert.Contains(t, view, "Going Home")
	assert.Contains(t, view, "https://codeforces.com/problemset/problem/1500/A")
	assert.Contains(t, view, "hashing")
	assert.False(t, s.loading)
}

func TestLoadingView(t *testing.T) {
	svc := verify.NewService(backend.NewMockClient(), nil, zap.NewNop())
	s := New(svc, handle.Handle("tourist"), testWindow)

	assert.True(t, s.loading)
	assert.Contains(t, s.View(100, 30), "Fetching today's challenge")
}

func TestAcquisitionFailureAndRetry(t *testing.T) {
	mock := backend.NewMockClient().
		QueueDaily(backend.MockResponse{Err: &backend.StatusError{Op: backend.OpDaily, StatusCode: http.StatusInternalServerError}}).
		QueueDaily(backend.MockResponse{Problem: dailyProblem})
	svc := verify.NewService(mock, nil, zap.NewNop())
	s := New(svc, handle.Handle("tourist"), testWindow)

	s.Update(s.acquire()())
	assert.Contains(t, s.View(100, 30), "SYSTEM FAILURE: Failed to fetch challenge problem")

	// Verify is unavailable without a problem.
	s.Update(keyPress('v'))
	assert.False(t, s.modalOpen)

	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	assert.True(t, s.loading)
	assert.Empty(t, s.failure)

	s.Update(s.acquire()())
	require.NotNil(t, s.problem)
	assert.Equal(t, "1500A", s.problem.ID)
	assert.Equal(t, 2, mock.CallCount(backend.OpDaily))
}

func TestMissingHandleAcquisition(t *testing.T) {
	svc := verify.NewService(backend.NewMockClient(), nil, zap.NewNop())
	s := New(svc, handle.Handle(""), testWindow)

	s.Update(s.acquire()())
	assert.Equal(t, verify.MsgMissingHandle, s.failure)
}

func TestStaleProblemDropped(t *testing.T) {
	svc := verify.NewService(backend.NewMockClient(), nil, zap.NewNop())
	s := New(svc, handle.Handle("tourist"), testWindow)

	s.Update(problemLoadedMsg{owner: uuid.New(), problem: verify.NewProblem("1A", "Theatre Square", 1000, nil)})
	assert.True(t, s.loading)
	assert.Nil(t, s.problem)
}

func TestVerifySuccess(t *testing.T) {
	mock := backend.NewMockClient().QueueSubmit(backend.MockResponse{})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	require.True(t, s.modalOpen)
	s.Update(keyPress('2'))
	s.Update(keyPress('5'))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, verify.StateSubmitting, s.machine.State())
	assert.Contains(t, s.View(100, 30), "Checking with Codeforces")

	_, resetCmd := s.Update(findVerified(t, cmd))
	assert.Equal(t, verify.StateSuccess, s.machine.State())
	view := s.View(100, 30)
	assert.Contains(t, view, "Great Job!")
	assert.Contains(t, view, verify.MsgChallengeSuccess)

	require.Len(t, mock.SubmitCalls, 1)
	assert.Equal(t, backend.Submission{ProblemID: "1500A", TimeSpentMinutes: 25}, mock.SubmitCalls[0])

	// Enter while the confirmation shows does not resubmit.
	_, again := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, again)

	require.NotNil(t, resetCmd)
	s.Update(resetCmd())
	assert.Equal(t, verify.StateIdle, s.machine.State())
	assert.False(t, s.modalOpen)
	assert.Empty(t, s.timeInput.Value())
}

func TestVerifyNotYetAcceptedThenRetry(t *testing.T) {
	mock := backend.NewMockClient().
		QueueSubmit(backend.MockResponse{Err: rejection("Problem not solved on Codeforces")}).
		QueueSubmit(backend.MockResponse{})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(findVerified(t, cmd))

	assert.Equal(t, verify.StateFailed, s.machine.State())
	assert.Contains(t, s.View(100, 30), "haven't solved this yet")
	assert.True(t, s.modalOpen)

	// Editing the time clears the rejection.
	s.Update(keyPress('5'))
	assert.Equal(t, verify.StateIdle, s.machine.State())
	assert.NotContains(t, s.View(100, 30), "haven't solved this yet")

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	s.Update(findVerified(t, cmd))
	assert.Equal(t, verify.StateSuccess, s.machine.State())
	assert.Equal(t, 2, mock.CallCount(backend.OpSubmit))
}

func TestAlreadyTrackedShownAsFailure(t *testing.T) {
	mock := backend.NewMockClient().
		QueueSubmit(backend.MockResponse{Err: rejection("already solved")})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(findVerified(t, cmd))

	assert.Equal(t, verify.StateFailed, s.machine.State())
	assert.Contains(t, s.View(100, 30), verify.MsgAlreadyTracked)
}

func TestEscapeHandling(t *testing.T) {
	mock := backend.NewMockClient().
		QueueSubmit(backend.MockResponse{Err: rejection("")})
	s := newLoaded(t, mock)

	assert.False(t, s.CapturesEscape(), "esc should navigate back when no modal is open")

	s.Update(keyPress('v'))
	assert.True(t, s.CapturesEscape())

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.True(t, s.machine.InFlight())

	// Esc is ignored while the request is in flight.
	s.Update(specialKey(tea.KeyEscape))
	assert.True(t, s.modalOpen)

	s.Update(findVerified(t, cmd))
	assert.Contains(t, s.View(100, 30), verify.MsgVerificationFailed)

	s.Update(specialKey(tea.KeyEscape))
	assert.False(t, s.modalOpen)
	assert.Equal(t, verify.StateIdle, s.machine.State())
	assert.False(t, s.CapturesEscape())
}

func TestTypingIgnoredWhileSubmitting(t *testing.T) {
	mock := backend.NewMockClient().QueueSubmit(backend.MockResponse{})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	s.Update(keyPress('7'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('9'))

	assert.Equal(t, "7", s.timeInput.Value())

	// A second Enter while in flight dispatches nothing.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestCloseDropsLateResult(t *testing.T) {
	mock := backend.NewMockClient().QueueSubmit(backend.MockResponse{})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	v := findVerified(t, cmd)

	s.Close()
	_, next := s.Update(v)
	assert.Nil(t, next)
	assert.NotEqual(t, verify.StateSuccess, s.machine.State())
}

func TestStaleVerificationDropped(t *testing.T) {
	mock := backend.NewMockClient().QueueSubmit(backend.MockResponse{})
	s := newLoaded(t, mock)

	s.Update(keyPress('v'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	v := findVerified(t, cmd)
	v.owner = uuid.New()

	s.Update(v)
	assert.Equal(t, verify.StateSubmitting, s.machine.State())
}

func TestKeyHints(t *testing.T) {
	s := newLoaded(t, backend.NewMockClient())

	var keys []string
	for _, h := range s.KeyHints() {
		keys = append(keys, h.Key)
	}
	assert.Contains(t, strings.Join(keys, ","), "v")

	s.Update(keyPress('v'))
	keys = keys[:0]
	for _, h := range s.KeyHints() {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, []string{"Enter", "Esc"}, keys)
}
