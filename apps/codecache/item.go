// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codecache/item.go
// Summary: Display items for the snippet list.
// An item wraps a snippet with its height, styles and highlighted code;
// items are rebuilt on every render and never stored.

package codecache

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/simon0302010/codecache/highlight"
	"github.com/simon0302010/codecache/language"
	"github.com/simon0302010/codecache/store"
	"github.com/simon0302010/codecache/texelui/core"
)

// BorderOverhead is the rows an item adds around its text: top border,
// description/code separator and bottom border.
const BorderOverhead = 3

// LineCount counts lines the way a line iterator does: empty text has no
// lines and a trailing newline does not start another one.
func LineCount(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// Height returns the rows needed to draw sn.
func Height(sn store.Snippet) int {
	return LineCount(sn.Description) + LineCount(sn.Code) + BorderOverhead
}

// Heights returns Height for every snippet, in order.
func Heights(snippets []store.Snippet) []int {
	out := make([]int, len(snippets))
	for i, sn := range snippets {
		out[i] = Height(sn)
	}
	return out
}

type item struct {
	snippet store.Snippet
	lang    language.Language
	code    highlight.Fragment
	body    tcell.Style
	border  tcell.Style
}

func (it item) header() string {
	return fmt.Sprintf(" %s (%s) ", it.snippet.Title, it.lang.Name())
}

// itemBox returns the middle half of a list row band starting at y.
func itemBox(area core.Rect, y, height int) core.Rect {
	return core.Rect{X: area.X + area.W/4, Y: y, W: area.W / 2, H: height}
}

// drawItem draws it inside box. The painter's clip decides which rows of a
// partially visible item reach the buffer.
func drawItem(p *core.Painter, box core.Rect, it item) {
	if box.W < 2 || box.H < BorderOverhead {
		return
	}
	inner := box.Inner()
	p.Fill(inner, ' ', it.body)
	p.DrawBorder(box, it.border, core.SingleLine)

	if title := runewidth.Truncate(it.header(), box.W-2, "…"); box.W > 2 && title != "" {
		x := box.X + 1 + (box.W-2-runewidth.StringWidth(title))/2
		p.DrawText(x, box.Y, x, title, it.border)
	}

	text := p.WithClip(inner)
	y := inner.Y
	descLines := LineCount(it.snippet.Description)
	for _, line := range strings.SplitN(it.snippet.Description, "\n", descLines+1)[:descLines] {
		text.DrawText(inner.X, y, inner.X, line, it.body)
		y++
	}

	sep := box.Y + 1 + descLines
	p.SetCell(box.X, sep, '├', it.border)
	p.SetCell(box.X+box.W-1, sep, '┤', it.border)
	for x := box.X + 1; x < box.X+box.W-1; x++ {
		p.SetCell(x, sep, '─', it.border)
	}
	y = sep + 1

	codeLines := min(LineCount(it.snippet.Code), len(it.code.Lines))
	for _, line := range it.code.Lines[:codeLines] {
		x := inner.X
		for _, run := range line {
			x = text.DrawText(x, y, inner.X, run.Text, run.Style.Apply(it.body))
		}
		y++
	}
}
