// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/layout.go
// Summary: Draw plan for a virtualized list of variable-height items.
//
// Layout only looks at item heights, never at the items themselves, and
// returns a new State instead of mutating anything. Padding items are kept
// in the plan on both sides of the viewport so selection moves do not snap
// the window; the list never wraps around its ends.

package scroll

// Placement positions one item relative to the top of the viewport.
type Placement struct {
	Index   int
	Y       int // may be negative or past the viewport for padding items
	Height  int
	Visible bool // at least one row lies inside the viewport
}

// Bottom returns the row just below the item.
func (p Placement) Bottom() int { return p.Y + p.Height }

// Plan is the set of items that must be drawn for one render pass.
type Plan struct {
	State    State
	Items    []Placement
	Count    int
	Viewport int
}

// Visible returns the placements that intersect the viewport.
func (p Plan) Visible() []Placement {
	out := make([]Placement, 0, len(p.Items))
	for _, it := range p.Items {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

// CanScrollUp reports whether items exist above the viewport.
func (p Plan) CanScrollUp() bool {
	return p.State.Offset > 0
}

// CanScrollDown reports whether content continues below the viewport.
func (p Plan) CanScrollDown() bool {
	vis := p.Visible()
	if len(vis) == 0 {
		return false
	}
	last := vis[len(vis)-1]
	return last.Index < p.Count-1 || last.Bottom() > p.Viewport
}

// Layout computes the draw plan for items with the given heights.
// padding is the number of extra items kept around the selection and beyond
// each viewport edge.
func Layout(heights []int, state State, viewport, padding int) Plan {
	n := len(heights)
	state = state.Clamp(n)
	if padding < 0 {
		padding = 0
	}
	plan := Plan{State: state, Count: n, Viewport: viewport}
	if n == 0 || viewport <= 0 {
		return plan
	}

	state.Offset = followSelection(heights, state, viewport, padding)
	plan.State = state

	// Padding above, placed at negative rows.
	first := max(0, state.Offset-padding)
	y := 0
	for i := first; i < state.Offset; i++ {
		y -= heights[i]
	}
	for i := first; i < state.Offset; i++ {
		plan.Items = append(plan.Items, Placement{Index: i, Y: y, Height: heights[i]})
		y += heights[i]
	}

	// Items inside the viewport.
	i := state.Offset
	for ; i < n && y < viewport; i++ {
		plan.Items = append(plan.Items, Placement{Index: i, Y: y, Height: heights[i], Visible: heights[i] > 0})
		y += heights[i]
	}

	// Padding below.
	for end := min(n, i+padding); i < end; i++ {
		plan.Items = append(plan.Items, Placement{Index: i, Y: y, Height: heights[i]})
		y += heights[i]
	}
	return plan
}

// followSelection returns the offset that keeps the selection, plus up to
// padding neighbours on each side, inside the viewport with minimal movement.
// Padding shrinks until the padded window fits; the selected item always does.
func followSelection(heights []int, state State, viewport, padding int) int {
	offset := state.Offset
	if !state.HasSelection() {
		return offset
	}
	sel := state.Selected
	n := len(heights)

	p := padding
	for p > 0 && span(heights, max(0, sel-p), min(n-1, sel+p)) > viewport {
		p--
	}

	if top := max(0, sel-p); offset > top {
		offset = top
	}

	last := min(n-1, sel+p)
	for offset < sel && span(heights, offset, last) > viewport {
		offset++
	}
	return offset
}

// span sums heights[from..to] inclusive.
func span(heights []int, from, to int) int {
	total := 0
	for i := from; i <= to; i++ {
		total += heights[i]
	}
	return total
}
