// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/fragment.go
// Summary: Structured styled text produced by the highlighter.

package highlight

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Style is the foreground/background pair attached to a run. ColorDefault
// means "inherit from the surface the run is drawn on".
type Style struct {
	FG   tcell.Color
	BG   tcell.Color
	Attr tcell.AttrMask
}

// Plain is the style of uncolored text.
var Plain = Style{FG: tcell.ColorDefault, BG: tcell.ColorDefault}

// Apply layers s over base.
func (s Style) Apply(base tcell.Style) tcell.Style {
	out := base
	if s.FG != tcell.ColorDefault {
		out = out.Foreground(s.FG)
	}
	if s.BG != tcell.ColorDefault {
		out = out.Background(s.BG)
	}
	if s.Attr != 0 {
		_, _, attr := base.Decompose()
		out = out.Attributes(attr | s.Attr)
	}
	return out
}

// Run is a stretch of text sharing one style. Runs never contain '\n'.
type Run struct {
	Text  string
	Style Style
}

// Line is the ordered runs of one source line.
type Line []Run

// Text concatenates the runs of l.
func (l Line) Text() string {
	var sb strings.Builder
	for _, r := range l {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Fragment is highlighted text split at the source's line breaks.
// Joining the lines with '\n' reproduces the source exactly.
type Fragment struct {
	Lines []Line
}

// Text reassembles the source text.
func (f Fragment) Text() string {
	var sb strings.Builder
	for i, l := range f.Lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range l {
			sb.WriteString(r.Text)
		}
	}
	return sb.String()
}

// Raw wraps text as an uncolored fragment.
func Raw(text string) Fragment {
	var b builder
	b.write(text, Plain)
	return b.fragment()
}

// builder accumulates runs, starting a new line at every '\n' and merging
// adjacent runs that share a style.
type builder struct {
	lines []Line
	cur   Line
}

func (b *builder) write(text string, style Style) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			b.append(text, style)
			return
		}
		b.append(text[:i], style)
		b.lines = append(b.lines, b.cur)
		b.cur = nil
		text = text[i+1:]
	}
}

func (b *builder) append(text string, style Style) {
	if text == "" {
		return
	}
	if n := len(b.cur); n > 0 && b.cur[n-1].Style == style {
		b.cur[n-1].Text += text
		return
	}
	b.cur = append(b.cur, Run{Text: text, Style: style})
}

func (b *builder) fragment() Fragment {
	return Fragment{Lines: append(b.lines, b.cur)}
}
