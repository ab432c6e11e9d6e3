package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, repo store.EventRepo) {
	t.Helper()
	ctx := context.Background()
	for _, e := range []store.VerificationEventData{
		{Handle: "tourist", ProblemID: "4A", TimeSpentMinutes: 10, Flow: "manual", Kind: "success", Message: "Successfully logged 4A!"},
		{Handle: "tourist", ProblemID: "1500A", TimeSpentMinutes: 30, Flow: "challenge", Kind: "not_yet_accepted", Message: "not yet"},
		{Handle: "petr", ProblemID: "1B", Flow: "manual", Kind: "success"},
	} {
		require.NoError(t, repo.AppendVerification(ctx, e))
	}
}

func load(s *HistoryScreen) {
	s.Update(s.Init()())
}

func TestHistoryListsHandleAttempts(t *testing.T) {
	st := openStore(t)
	seed(t, st.EventRepo())

	s := New(st.EventRepo(), handle.Handle("tourist"))
	assert.Contains(t, s.View(100, 30), "Loading history")

	load(s)
	require.Len(t, s.attempts, 2)
	// Newest first.
	assert.Equal(t, "1500A", s.attempts[0].ProblemID)

	view := s.View(120, 40)
	assert.Contains(t, view, "1500A")
	assert.Contains(t, view, "4A")
	assert.NotContains(t, view, "1B")
	assert.Contains(t, view, "1 solved / 2 attempts")
	assert.Contains(t, view, "· 10 min")
}

func TestHistoryNavigationAndDetails(t *testing.T) {
	st := openStore(t)
	seed(t, st.EventRepo())

	s := New(st.EventRepo(), handle.Handle("tourist"))
	load(s)

	s.Update(keyPress('k'))
	assert.Equal(t, 0, s.selected, "cannot move above the first row")

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 1, s.selected, "cannot move past the last row")

	s.Update(specialKey(tea.KeyEnter))
	assert.True(t, strings.Contains(s.View(120, 40), "Successfully logged 4A!"))
}

func TestHistoryRefresh(t *testing.T) {
	st := openStore(t)
	s := New(st.EventRepo(), handle.Handle("tourist"))
	load(s)
	assert.Contains(t, s.View(100, 30), "Nothing tracked yet")

	seed(t, st.EventRepo())
	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	assert.False(t, s.loaded)

	s.Update(cmd())
	assert.Len(t, s.attempts, 2)
}

func TestHistoryNilRepo(t *testing.T) {
	s := New(nil, handle.Handle("tourist"))
	load(s)
	assert.Contains(t, s.View(100, 30), "Nothing tracked yet")
}

func TestHistoryError(t *testing.T) {
	s := New(nil, handle.Handle("tourist"))
	s.Update(historyLoadedMsg{Err: errors.New("disk on fire")})
	assert.Contains(t, s.View(100, 30), "Error: disk on fire")
}
