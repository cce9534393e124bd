// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped drawing onto a cell buffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of columns a tab advances to.
const TabWidth = 4

// Cell is one terminal cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is an integer screen rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o (zero-sized when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inner shrinks r by one cell on every side.
func (r Rect) Inner() Rect {
	if r.W < 2 || r.H < 2 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

// NewBuffer allocates a w x h buffer filled with blanks in style.
func NewBuffer(w, h int, style tcell.Style) [][]Cell {
	buf := make([][]Cell, h)
	for y := range buf {
		row := make([]Cell, w)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: style}
		}
		buf[y] = row
	}
	return buf
}

// Painter draws into a buffer, discarding cells outside its clip rect.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter creates a painter covering the whole buffer.
func NewPainter(buf [][]Cell) *Painter {
	h := len(buf)
	w := 0
	if h > 0 {
		w = len(buf[0])
	}
	return &Painter{buf: buf, clip: Rect{W: w, H: h}}
}

// WithClip returns a painter on the same buffer restricted to r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// Clip returns the current clip rect.
func (p *Painter) Clip() Rect { return p.clip }

// SetCell writes one cell if it is inside the clip rect.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = p.clip.Intersect(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.buf[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// DrawText writes text starting at column x and returns the column after the
// last cell written. col0 is the column tabs are measured from. Wide runes
// occupy two cells; zero-width runes are skipped.
func (p *Painter) DrawText(x, y, col0 int, text string, style tcell.Style) int {
	for _, r := range text {
		switch {
		case r == '\t':
			next := col0 + ((x-col0)/TabWidth+1)*TabWidth
			for ; x < next; x++ {
				p.SetCell(x, y, ' ', style)
			}
			continue
		case r == '\r':
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(x, y, r, style)
		if w == 2 {
			p.SetCell(x+1, y, ' ', style)
		}
		x += w
	}
	return x
}

// TextWidth returns the number of cells s occupies.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// SingleLine is the default border charset: h, v, tl, tr, bl, br.
var SingleLine = [6]rune{'─', '│', '┌', '┐', '└', '┘'}

// DrawBorder outlines r with charset (h, v, tl, tr, bl, br).
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		p.SetCell(x, r.Y, charset[0], style)
		p.SetCell(x, y1, charset[0], style)
	}
	for y := r.Y + 1; y < y1; y++ {
		p.SetCell(r.X, y, charset[1], style)
		p.SetCell(x1, y, charset[1], style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(x1, r.Y, charset[3], style)
	p.SetCell(r.X, y1, charset[4], style)
	p.SetCell(x1, y1, charset[5], style)
}
