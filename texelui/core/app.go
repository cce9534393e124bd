// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/app.go
// Summary: Contract between a full-screen app and the terminal runner.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// App is a full-screen application driven by a runner.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
	GetTitle() string
}

// PasteHandler apps receive bracketed paste content as one block.
type PasteHandler interface {
	HandlePaste(data []byte)
}

// Notifier wraps a refresh channel so callers never block on it.
type Notifier struct {
	mu sync.Mutex
	ch chan<- bool
}

// Set replaces the channel; nil disables notifications.
func (n *Notifier) Set(ch chan<- bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ch = ch
}

// Request signals the runner to redraw. Pending requests coalesce.
func (n *Notifier) Request() {
	n.mu.Lock()
	ch := n.ch
	n.mu.Unlock()

	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}
