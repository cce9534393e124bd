// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner_test.go
// Summary: Exercises the screen runner against a simulation screen.

package devshell_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/simon0302010/codecache/internal/devshell"
	"github.com/simon0302010/codecache/texelui/core"
)

type stubApp struct {
	mu           sync.Mutex
	renderCount  int
	resizes      [][2]int
	keys         []*tcell.EventKey
	stopCalled   bool
	stopCh       chan struct{}
	runStarted   chan struct{}
	runCompleted chan struct{}
	refresh      chan<- bool
	runErr       error
	pastes       []string
}

func newStubApp() *stubApp {
	return &stubApp{
		stopCh:       make(chan struct{}),
		runStarted:   make(chan struct{}),
		runCompleted: make(chan struct{}),
	}
}

func (a *stubApp) Run() error {
	close(a.runStarted)
	<-a.stopCh
	close(a.runCompleted)
	return a.runErr
}

func (a *stubApp) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopCalled {
		return
	}
	a.stopCalled = true
	close(a.stopCh)
}

func (a *stubApp) Resize(cols, rows int) {
	a.mu.Lock()
	a.resizes = append(a.resizes, [2]int{cols, rows})
	a.mu.Unlock()
}

func (a *stubApp) Render() [][]core.Cell {
	a.mu.Lock()
	a.renderCount++
	a.mu.Unlock()
	return [][]core.Cell{{{Ch: 'X'}}}
}

func (a *stubApp) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	a.keys = append(a.keys, ev)
	a.mu.Unlock()
}

func (a *stubApp) HandlePaste(data []byte) {
	a.mu.Lock()
	a.pastes = append(a.pastes, string(data))
	a.mu.Unlock()
}

func (a *stubApp) recordedPastes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.pastes...)
}

func (a *stubApp) SetRefreshNotifier(ch chan<- bool) { a.refresh = ch }
func (a *stubApp) GetTitle() string                  { return "stub" }

func (a *stubApp) waitRunStarted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runStarted:
	case <-time.After(time.Second):
		t.Fatal("app.Run was not invoked")
	}
}

func (a *stubApp) waitRunCompleted(t *testing.T) {
	t.Helper()
	select {
	case <-a.runCompleted:
	case <-time.After(time.Second):
		t.Fatal("app was not stopped")
	}
}

func (a *stubApp) renderCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderCount
}

func (a *stubApp) lastResize() (int, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.resizes) == 0 {
		return 0, 0, false
	}
	last := a.resizes[len(a.resizes)-1]
	return last[0], last[1], true
}

func (a *stubApp) recordedKeys() []*tcell.EventKey {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*tcell.EventKey, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a *stubApp) requestRefresh() {
	if a.refresh == nil {
		return
	}
	select {
	case a.refresh <- true:
	default:
	}
}

func startRunner(t *testing.T, app core.App) (tcell.SimulationScreen, chan error) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return screen, nil
	})
	t.Cleanup(func() { devshell.SetScreenFactory(nil) })

	errCh := make(chan error, 1)
	go func() {
		errCh <- devshell.Run(app)
	}()
	return screen, errCh
}

func TestRunHandlesInputRefreshAndShutdown(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRunner(t, app)

	app.waitRunStarted(t)

	// Initial draw should have rendered at least once.
	waitFor(func() bool { return app.renderCalls() > 0 }, 500*time.Millisecond, t, "initial render")

	// Trigger a refresh and expect another render.
	before := app.renderCalls()
	app.requestRefresh()
	waitFor(func() bool { return app.renderCalls() > before }, 500*time.Millisecond, t, "render after refresh")

	// Send key event and verify it reaches the app.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))
	waitFor(func() bool {
		keys := app.recordedKeys()
		return len(keys) > 0 && keys[0].Rune() == 'x'
	}, 500*time.Millisecond, t, "key press to be handled")

	// Send resize and confirm app receives new size.
	screen.PostEvent(tcell.NewEventResize(50, 12))
	waitFor(func() bool {
		w, h, ok := app.lastResize()
		return ok && w == 50 && h == 12
	}, 500*time.Millisecond, t, "resize event to be handled")

	// Exit via Ctrl-C.
	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not exit after Ctrl-C")
	}

	app.waitRunCompleted(t)
	app.mu.Lock()
	stopped := app.stopCalled
	app.mu.Unlock()
	if !stopped {
		t.Fatal("app.Stop was not invoked")
	}
}

func TestRunCollectsBracketedPaste(t *testing.T) {
	app := newStubApp()
	screen, errCh := startRunner(t, app)
	app.waitRunStarted(t)

	screen.PostEvent(tcell.NewEventPaste(true))
	for _, r := range "ab" {
		screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, r, 0))
	}
	screen.PostEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyTab, 0, 0))
	screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'c', 0))
	screen.PostEvent(tcell.NewEventPaste(false))

	waitFor(func() bool { return len(app.recordedPastes()) == 1 }, 500*time.Millisecond, t, "paste to be delivered")
	if got := app.recordedPastes()[0]; got != "ab\n\tc" {
		t.Fatalf("paste = %q", got)
	}
	if keys := app.recordedKeys(); len(keys) != 0 {
		t.Fatalf("pasted keys leaked to HandleKey: %d", len(keys))
	}

	screen.PostEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))
	select {
	case <-errCh:
	case <-time.After(time.Second):
		t.Fatal("run did not exit")
	}
}

func TestRunReturnsWhenAppExits(t *testing.T) {
	app := newStubApp()
	app.runErr = errors.New("boom")
	_, errCh := startRunner(t, app)
	app.waitRunStarted(t)

	app.Stop()
	select {
	case err := <-errCh:
		if err == nil || err.Error() != "boom" {
			t.Fatalf("run returned %v, want boom", err)
		}
	case <-time.After(time.Second):
		t.Fatal("run did not return after the app exited")
	}
}

func TestRunReportsScreenFailure(t *testing.T) {
	devshell.SetScreenFactory(func() (tcell.Screen, error) {
		return nil, errors.New("no tty")
	})
	defer devshell.SetScreenFactory(nil)

	if err := devshell.Run(newStubApp()); err == nil {
		t.Fatal("expected error when the screen cannot be created")
	}
}

func waitFor(cond func() bool, timeout time.Duration, t *testing.T, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}
