// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/runner.go
// Summary: Runs a full-screen app inside a local tcell screen.

package devshell

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/simon0302010/codecache/texelui/core"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// appExited is posted as interrupt data once app.Run returns.
type appExited struct{}

// Run drives app until it exits or the user presses Ctrl-C.
func Run(app core.App) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnablePaste()
	defer screen.DisablePaste()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		screen.Clear()
		buffer := app.Render()
		for y, row := range buffer {
			for x, cell := range row {
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
		screen.PostEvent(tcell.NewEventInterrupt(appExited{}))
	}()
	defer app.Stop()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-refreshCh:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	var pasteBuffer []rune
	var inPaste bool

	for {
		select {
		case err := <-runErr:
			return err
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			if _, exited := tev.Data().(appExited); exited {
				continue
			}
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			screen.Sync()
			draw()
		case *tcell.EventPaste:
			if tev.Start() {
				inPaste = true
				pasteBuffer = nil
			} else if tev.End() {
				inPaste = false
				if ph, ok := app.(core.PasteHandler); ok && len(pasteBuffer) > 0 {
					ph.HandlePaste([]byte(string(pasteBuffer)))
					draw()
				}
				pasteBuffer = nil
			}
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC {
				return nil
			}
			if inPaste {
				pasteBuffer = appendPasteKey(pasteBuffer, tev)
				continue
			}
			app.HandleKey(tev)
			draw()
		}
	}
}

// appendPasteKey converts a key delivered inside a bracketed paste back
// into the text it came from.
func appendPasteKey(buf []rune, ev *tcell.EventKey) []rune {
	switch ev.Key() {
	case tcell.KeyRune:
		return append(buf, ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		return append(buf, '\n')
	case tcell.KeyTab:
		return append(buf, '\t')
	}
	return buf
}
