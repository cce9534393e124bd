// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grammar/tables.go
// Summary: Read-only grammar and theme tables shared by classifier and highlighter.
//
// Tables are built once at startup and passed by pointer into the
// classifier and the highlighter. Nothing mutates them after Load returns,
// so a single instance is safe to reuse across render passes without locking.

package grammar

import (
	"log"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/simon0302010/codecache/language"
)

// DefaultStyleName is the chroma style used when none is configured.
const DefaultStyleName = "catppuccin-mocha"

// lexerNames maps stored tags to chroma lexer names.
var lexerNames = map[string]string{
	"py":   "python",
	"go":   "go",
	"java": "java",
	"c":    "c",
	"cpp":  "c++",
	"html": "html",
	"css":  "css",
	"cs":   "c#",
	"yaml": "yaml",
	"json": "json",
	"toml": "toml",
	"sh":   "bash",
	"md":   "markdown",
	"rs":   "rust",
	"ts":   "typescript",
	"js":   "javascript",
}

// Options configures Load.
type Options struct {
	// StyleName selects the chroma style. Unknown names fall back to chroma's default.
	StyleName string

	// Candidates overrides the classification candidate list. Nil uses DefaultCandidates.
	Candidates []Candidate
}

// Tables holds the classification candidates, the lexer table and the theme.
type Tables struct {
	candidates []Candidate
	lexers     map[string]chroma.Lexer
	style      *chroma.Style
}

// Load builds the tables. Missing lexers are logged and left out of the
// table; the corresponding tags render uncolored.
func Load(opts Options) *Tables {
	name := opts.StyleName
	if name == "" {
		name = DefaultStyleName
	}

	cands := opts.Candidates
	if cands == nil {
		cands = DefaultCandidates()
	}

	t := &Tables{
		candidates: append([]Candidate(nil), cands...),
		lexers:     make(map[string]chroma.Lexer, len(lexerNames)),
		style:      styles.Get(name),
	}
	for tag, lexerName := range lexerNames {
		l := lexers.Get(lexerName)
		if l == nil {
			log.Printf("[HIGHLIGHT] No lexer %q for tag %q", lexerName, tag)
			continue
		}
		t.lexers[tag] = chroma.Coalesce(l)
	}
	return t
}

// Candidates returns the ordered classification candidates.
func (t *Tables) Candidates() []Candidate {
	return append([]Candidate(nil), t.candidates...)
}

// Lexer returns the lexer bound to tag. Tags match the way language.ForTag
// matches them: surrounding space and case are ignored.
func (t *Tables) Lexer(tag string) (chroma.Lexer, bool) {
	l, ok := t.lexers[strings.ToLower(strings.TrimSpace(tag))]
	return l, ok
}

// Style returns the fixed theme.
func (t *Tables) Style() *chroma.Style {
	return t.style
}

// HasLexer reports whether l has a highlighting grammar.
func (t *Tables) HasLexer(l language.Language) bool {
	_, ok := t.lexers[l.Tag()]
	return ok
}
