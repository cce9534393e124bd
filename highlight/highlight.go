// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: highlight/highlight.go
// Summary: Chroma-backed colorization of snippets into Fragments.
//
// Tokens are mapped straight to styled runs; the visible characters of the
// output always equal the input. Tags without a lexer, tokenizer failures
// and any token stream that does not line up with the source degrade to the
// raw text, uncolored.

package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"

	"github.com/simon0302010/codecache/grammar"
)

// tokeniseOptions keeps carriage returns intact so runs match the source.
var tokeniseOptions = &chroma.TokeniseOptions{State: "root"}

// Renderer colorizes snippets with the lexers and theme in a grammar table.
type Renderer struct {
	tables *grammar.Tables
}

// New creates a renderer over tables.
func New(tables *grammar.Tables) *Renderer {
	return &Renderer{tables: tables}
}

// Highlight colorizes code using the lexer registered for tag. The returned
// fragment is always displayable; ok is false when it is the raw fallback.
func (r *Renderer) Highlight(code, tag string) (Fragment, bool) {
	lexer, found := r.tables.Lexer(tag)
	if !found {
		return Raw(code), false
	}

	tokens, err := chroma.Tokenise(lexer, tokeniseOptions, code)
	if err != nil {
		return Raw(code), false
	}

	frag, ok := buildFragment(code, tokens, r.tables.Style())
	if !ok {
		return Raw(code), false
	}
	return frag, true
}

// buildFragment consumes code token by token. Lexers that append a final
// newline produce a token longer than the remaining input; only that
// trailing surplus is dropped.
func buildFragment(code string, tokens []chroma.Token, style *chroma.Style) (Fragment, bool) {
	baseColour := style.Get(chroma.Text).Colour

	var b builder
	rest := code
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		if rest == "" {
			if strings.Trim(tok.Value, "\n") != "" {
				return Fragment{}, false
			}
			continue
		}
		v := tok.Value
		if len(v) > len(rest) {
			if !strings.HasPrefix(v, rest) || strings.Trim(v[len(rest):], "\n") != "" {
				return Fragment{}, false
			}
			v = rest
		}
		if !strings.HasPrefix(rest, v) {
			return Fragment{}, false
		}
		b.write(v, tokenStyle(style.Get(tok.Type), baseColour))
		rest = rest[len(v):]
	}
	if rest != "" {
		return Fragment{}, false
	}
	return b.fragment(), true
}

// tokenStyle resolves a style entry to a run style. Tokens colored like the
// base text keep the default foreground so the surface color shows through.
func tokenStyle(entry chroma.StyleEntry, baseColour chroma.Colour) Style {
	s := Plain
	if entry.Bold == chroma.Yes {
		s.Attr |= tcell.AttrBold
	}
	if entry.Italic == chroma.Yes {
		s.Attr |= tcell.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		s.Attr |= tcell.AttrUnderline
	}
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		s.FG = tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue()))
	}
	return s
}
