// Copyright 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/scrollbar.go
// Summary: Vertical scrollbar rendering for item lists.
// Draws begin/end caps, a track, and a thumb positioned by item index.

package scroll

import (
	"github.com/gdamore/tcell/v2"

	"github.com/simon0302010/codecache/texelui/core"
)

// Default scrollbar glyphs.
const (
	DefaultBeginGlyph = '▄'
	DefaultEndGlyph   = '▀'
	DefaultTrackGlyph = '┃'
	DefaultThumbGlyph = '█'
)

// ScrollbarConfig configures the appearance of a scrollbar.
type ScrollbarConfig struct {
	BeginGlyph rune
	EndGlyph   rune
	TrackGlyph rune
	ThumbGlyph rune

	TrackStyle tcell.Style
	ThumbStyle tcell.Style
	BeginStyle tcell.Style
	EndStyle   tcell.Style
}

// DefaultScrollbarConfig returns a configuration with the standard glyphs,
// every part drawn in style.
func DefaultScrollbarConfig(style tcell.Style) ScrollbarConfig {
	return ScrollbarConfig{
		BeginGlyph: DefaultBeginGlyph,
		EndGlyph:   DefaultEndGlyph,
		TrackGlyph: DefaultTrackGlyph,
		ThumbGlyph: DefaultThumbGlyph,
		TrackStyle: style,
		ThumbStyle: style,
		BeginStyle: style,
		EndStyle:   style,
	}
}

// ThumbSpan returns the thumb's first row and length within a track of
// trackLen rows for item position out of count items.
func ThumbSpan(trackLen, position, count int) (start, length int) {
	if trackLen <= 0 {
		return 0, 0
	}
	if count <= 1 {
		return 0, trackLen
	}
	length = max(1, trackLen/count)
	position = clamp(position, 0, count-1)
	start = position * (trackLen - length) / (count - 1)
	return start, length
}

// DrawScrollbar renders a vertical scrollbar in the rightmost column of rect.
func DrawScrollbar(painter *core.Painter, rect core.Rect, position, count int, config ScrollbarConfig) {
	if rect.W <= 0 || rect.H < 3 {
		return
	}
	x := rect.X + rect.W - 1

	painter.SetCell(x, rect.Y, glyphOr(config.BeginGlyph, DefaultBeginGlyph), config.BeginStyle)
	painter.SetCell(x, rect.Y+rect.H-1, glyphOr(config.EndGlyph, DefaultEndGlyph), config.EndStyle)

	trackLen := rect.H - 2
	for i := 0; i < trackLen; i++ {
		painter.SetCell(x, rect.Y+1+i, glyphOr(config.TrackGlyph, DefaultTrackGlyph), config.TrackStyle)
	}

	start, length := ThumbSpan(trackLen, position, count)
	for i := start; i < start+length; i++ {
		painter.SetCell(x, rect.Y+1+i, glyphOr(config.ThumbGlyph, DefaultThumbGlyph), config.ThumbStyle)
	}
}

func glyphOr(g, def rune) rune {
	if g == 0 {
		return def
	}
	return g
}
