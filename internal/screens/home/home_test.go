package home

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ascent-cf/ascent/internal/backend"
	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/router"
	"github.com/ascent-cf/ascent/internal/screen"
	"github.com/ascent-cf/ascent/internal/screens/challenge"
	"github.com/ascent-cf/ascent/internal/screens/history"
	"github.com/ascent-cf/ascent/internal/screens/logproblem"
	"github.com/ascent-cf/ascent/internal/store"
	"github.com/ascent-cf/ascent/internal/verify"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newDeps(t *testing.T) Deps {
	t.Helper()
	st, err := store.Open("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return Deps{
		Service: verify.NewService(backend.NewMockClient(), st.EventRepo(), zap.NewNop()),
		Events:  st.EventRepo(),
		Handle:  handle.Handle("tourist"),
	}
}

// selectItem moves the cursor to index i and presses Enter.
func selectItem(h *HomeScreen, i int) tea.Msg {
	for h.menu.Selected < i {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestMenuOpensScreens(t *testing.T) {
	tests := []struct {
		index int
		check func(t *testing.T, s screen.Screen)
	}{
		{0, func(t *testing.T, s screen.Screen) { assert.IsType(t, &challenge.ChallengeScreen{}, s) }},
		{1, func(t *testing.T, s screen.Screen) { assert.IsType(t, &logproblem.LogScreen{}, s) }},
		{2, func(t *testing.T, s screen.Screen) { assert.IsType(t, &history.HistoryScreen{}, s) }},
	}

	for _, tt := range tests {
		h := New(newDeps(t))
		msg := selectItem(h, tt.index)
		push, ok := msg.(router.PushScreenMsg)
		require.True(t, ok, "item %d: expected PushScreenMsg, got %T", tt.index, msg)
		tt.check(t, push.Screen)
	}
}

func TestMenuLogout(t *testing.T) {
	h := New(newDeps(t))
	assert.IsType(t, screen.LogoutMsg{}, selectItem(h, 3))
}

func TestMenuExit(t *testing.T) {
	h := New(newDeps(t))
	assert.IsType(t, tea.QuitMsg{}, selectItem(h, 4))
}

func TestStatsLoadAndResume(t *testing.T) {
	deps := newDeps(t)
	h := New(deps)
	assert.Contains(t, h.View(120, 40), "loading stats")

	h.Update(h.Init()())
	require.NotNil(t, h.stats)
	assert.Contains(t, h.View(120, 40), "0 SOLVED")
	assert.Contains(t, h.View(120, 40), "NEVER SYNCED")

	require.NoError(t, deps.Events.AppendVerification(context.Background(), store.VerificationEventData{
		Handle: "tourist", ProblemID: "4A", TimeSpentMinutes: 15, Flow: "manual", Kind: "success",
	}))

	_, cmd := h.Update(screen.ResumedMsg{})
	require.NotNil(t, cmd)
	h.Update(cmd())
	assert.Equal(t, 1, h.stats.Solved)
	assert.Contains(t, h.View(120, 40), "15 MIN")
}

func TestNoJournalHidesStats(t *testing.T) {
	h := New(Deps{Handle: handle.Handle("tourist")})
	assert.Nil(t, h.Init())
	assert.NotContains(t, h.View(120, 40), "loading stats")
}

func TestRecentProblems(t *testing.T) {
	deps := newDeps(t)
	ctx := context.Background()
	require.NoError(t, deps.Events.AppendProblem(ctx, store.ProblemEventData{
		Handle: "tourist", ProblemID: "1500A", Name: "Going Home", Rating: 1300,
	}))
	require.NoError(t, deps.Events.AppendProblem(ctx, store.ProblemEventData{
		Handle: "petr", ProblemID: "4A", Name: "Watermelon", Rating: 800,
	}))

	h := New(deps)
	assert.NotContains(t, h.View(120, 40), "RECENT CHALLENGES")

	h.Update(h.Init()())
	view := h.View(120, 40)
	assert.Contains(t, view, "RECENT CHALLENGES")
	assert.Contains(t, view, "Going Home")
	assert.NotContains(t, view, "Watermelon")
}

func TestMenuHintFollowsCursor(t *testing.T) {
	h := New(newDeps(t))
	assert.Contains(t, h.View(120, 40), "Solve today's recommended problem")

	h.Update(specialKey(tea.KeyDown))
	view := h.View(120, 40)
	assert.Contains(t, view, "Record a solve or sync with Codeforces")
	assert.NotContains(t, view, "Solve today's recommended problem")
}
