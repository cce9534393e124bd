// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Selection and first-visible-item state for variable-height lists.
// State is a value type; every method returns an updated copy.

package scroll

// NoSelection marks a list without a selected item.
const NoSelection = -1

// State is the caller-owned position of a list.
type State struct {
	Selected int // selected item index or NoSelection
	Offset   int // index of the item drawn at the top of the viewport
}

// NewState returns a state with nothing selected.
func NewState() State {
	return State{Selected: NoSelection}
}

// HasSelection reports whether an item is selected.
func (s State) HasSelection() bool {
	return s.Selected >= 0
}

// Select selects index i, clamped to [0, count).
func (s State) Select(i, count int) State {
	if count <= 0 {
		s.Selected = NoSelection
		s.Offset = 0
		return s
	}
	s.Selected = clamp(i, 0, count-1)
	return s
}

// Next moves the selection down one item. At the last item it is a no-op.
func (s State) Next(count int) State {
	if !s.HasSelection() {
		return s.Select(0, count)
	}
	return s.Select(s.Selected+1, count)
}

// Previous moves the selection up one item. At the first item it is a no-op.
func (s State) Previous(count int) State {
	if !s.HasSelection() {
		return s.Select(0, count)
	}
	return s.Select(s.Selected-1, count)
}

// Clamp fits the state to a list of count items.
func (s State) Clamp(count int) State {
	if count <= 0 {
		return State{Selected: NoSelection}
	}
	if s.Selected >= count {
		s.Selected = count - 1
	}
	if s.Selected < NoSelection {
		s.Selected = NoSelection
	}
	s.Offset = clamp(s.Offset, 0, count-1)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
