package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/ascent-cf/ascent/internal/handle"
	"github.com/ascent-cf/ascent/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(w *WelcomeScreen, s string) {
	for _, r := range s {
		w.Update(keyPress(r))
	}
}

func sendTicks(w *WelcomeScreen, n int) {
	for i := 0; i < n; i++ {
		w.Update(tickMsg(time.Now()))
	}
}

func TestRevealAfterTicks(t *testing.T) {
	w := New()
	if strings.Contains(w.View(100, 30), "CODEFORCES HANDLE") {
		t.Error("input should not be visible before reveal")
	}

	sendTicks(w, 5)
	if !strings.Contains(w.View(100, 30), "CODEFORCES HANDLE") {
		t.Error("input should be visible after reveal")
	}
}

func TestTicksStopAfterReveal(t *testing.T) {
	w := New()
	var cmd tea.Cmd
	for i := 0; i < 5; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	if cmd != nil {
		t.Error("expected ticking to stop once revealed")
	}
}

func TestEnterEmitsLogin(t *testing.T) {
	w := New()
	typeText(w, "tourist")

	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a login command")
	}
	msg, ok := cmd().(screen.LoginMsg)
	if !ok {
		t.Fatalf("expected LoginMsg, got %T", cmd())
	}
	if msg.Handle != handle.Handle("tourist") {
		t.Errorf("handle = %q, want tourist", msg.Handle)
	}

	// A second Enter does nothing.
	if _, cmd := w.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("second enter should not log in again")
	}
}

func TestBlankHandleRejected(t *testing.T) {
	w := New()
	typeText(w, "   ")

	_, cmd := w.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("blank handle must not log in")
	}
	sendTicks(w, 5)
	if !strings.Contains(w.View(100, 30), "Enter your Codeforces handle") {
		t.Error("expected a validation message")
	}

	// Typing clears the message.
	w.Update(keyPress('a'))
	if w.errMsg != "" {
		t.Error("expected typing to clear the validation message")
	}
}

func TestBannerCompact(t *testing.T) {
	if !strings.Contains(RenderBanner(40), "A S C E N T") {
		t.Error("expected compact banner on narrow terminals")
	}
}
