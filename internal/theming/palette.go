// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Colour palette for the snippet list with config overrides.

package theming

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/simon0302010/codecache/config"
)

// Palette holds every colour the snippet list draws with.
type Palette struct {
	TitleFG          tcell.Color
	TextFG           tcell.Color
	EvenBG           tcell.Color
	OddBG            tcell.Color
	BorderFG         tcell.Color
	SelectedBG       tcell.Color
	SelectedFG       tcell.Color
	SelectedBorderFG tcell.Color
	ScrollbarFG      tcell.Color
	ScrollbarActive  tcell.Color
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{
		TitleFG:          tcell.NewRGBColor(251, 73, 52),
		TextFG:           tcell.NewRGBColor(235, 219, 178),
		EvenBG:           tcell.NewRGBColor(60, 56, 54),
		OddBG:            tcell.NewRGBColor(80, 73, 69),
		BorderFG:         tcell.NewRGBColor(124, 111, 100),
		SelectedBG:       tcell.NewRGBColor(254, 128, 25),
		SelectedFG:       tcell.NewRGBColor(28, 28, 32),
		SelectedBorderFG: tcell.NewRGBColor(250, 189, 47),
		ScrollbarFG:      tcell.NewRGBColor(102, 92, 84),
		ScrollbarActive:  tcell.NewRGBColor(250, 130, 28),
	}
}

// FromConfig returns Default with any colours named in the "theme" section
// replaced. Unparseable values are logged and ignored.
func FromConfig(cfg config.Config) Palette {
	p := Default()
	section := cfg.Section("theme")
	if section == nil {
		return p
	}
	slots := map[string]*tcell.Color{
		"title_fg":            &p.TitleFG,
		"text_fg":             &p.TextFG,
		"even_bg":             &p.EvenBG,
		"odd_bg":              &p.OddBG,
		"border_fg":           &p.BorderFG,
		"selected_bg":         &p.SelectedBG,
		"selected_fg":         &p.SelectedFG,
		"selected_border_fg":  &p.SelectedBorderFG,
		"scrollbar_fg":        &p.ScrollbarFG,
		"scrollbar_active_fg": &p.ScrollbarActive,
	}
	for key, raw := range section {
		slot, ok := slots[key]
		if !ok {
			continue
		}
		s, _ := raw.(string)
		c := tcell.GetColor(s)
		if s == "" || c == tcell.ColorDefault {
			log.Printf("Config: ignoring theme.%s = %v", key, raw)
			continue
		}
		*slot = c
	}
	return p
}

// ItemStyles returns the body and border styles for the item at index.
// Selection wins over parity.
func (p Palette) ItemStyles(index int, selected bool) (body, border tcell.Style) {
	if selected {
		body = tcell.StyleDefault.Background(p.SelectedBG).Foreground(p.SelectedFG)
		return body, body.Foreground(p.SelectedBorderFG)
	}
	bg := p.EvenBG
	if index%2 != 0 {
		bg = p.OddBG
	}
	body = tcell.StyleDefault.Background(bg).Foreground(p.TextFG)
	return body, body.Foreground(p.BorderFG)
}

// Title is the style of the window title.
func (p Palette) Title() tcell.Style {
	return tcell.StyleDefault.Foreground(p.TitleFG).Bold(true)
}

// Scrollbar returns the scrollbar style, highlighted while active.
func (p Palette) Scrollbar(active bool) tcell.Style {
	if active {
		return tcell.StyleDefault.Foreground(p.ScrollbarActive)
	}
	return tcell.StyleDefault.Foreground(p.ScrollbarFG)
}
