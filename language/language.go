// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: language/language.go
// Summary: Closed set of supported snippet languages and their tag vocabulary.
//
// Tags are the extension-like identifiers persisted verbatim with each
// snippet ("py", "rs", ...). Every supported tag maps to exactly one
// Language; Unknown owns the reserved tag "unknown", and "txt" also resolves
// to Unknown.

package language

import "strings"

// Language identifies a supported snippet language.
type Language int

const (
	Unknown Language = iota
	Python
	Go
	Java
	C
	CPP
	HTML
	CSS
	CSharp
	YAML
	JSON
	TOML
	Bash
	Markdown
	Rust
	TypeScript
	JavaScript
)

// UnknownTag is the reserved tag stored for unresolved content.
const UnknownTag = "unknown"

// PlainTextTag is an accepted alias for UnknownTag.
const PlainTextTag = "txt"

type info struct {
	tag  string
	name string
}

var table = [...]info{
	Unknown:    {UnknownTag, "Unknown Language"},
	Python:     {"py", "Python"},
	Go:         {"go", "Go"},
	Java:       {"java", "Java"},
	C:          {"c", "C"},
	CPP:        {"cpp", "C++"},
	HTML:       {"html", "HTML"},
	CSS:        {"css", "CSS"},
	CSharp:     {"cs", "C#"},
	YAML:       {"yaml", "YAML"},
	JSON:       {"json", "JSON"},
	TOML:       {"toml", "TOML"},
	Bash:       {"sh", "Bash"},
	Markdown:   {"md", "Markdown"},
	Rust:       {"rs", "Rust"},
	TypeScript: {"ts", "TypeScript"},
	JavaScript: {"js", "JavaScript"},
}

var byTag = func() map[string]Language {
	m := make(map[string]Language, len(table))
	for l := Language(1); int(l) < len(table); l++ {
		m[table[l].tag] = l
	}
	return m
}()

// Tag returns the canonical short tag for l.
func (l Language) Tag() string {
	if l <= Unknown || int(l) >= len(table) {
		return UnknownTag
	}
	return table[l].tag
}

// Name returns the human-readable display name for l.
func (l Language) Name() string {
	if l <= Unknown || int(l) >= len(table) {
		return table[Unknown].name
	}
	return table[l].name
}

func (l Language) String() string { return l.Name() }

// ForTag resolves a stored tag. The boolean is false for the reserved
// Unknown tags and for anything outside the vocabulary.
func ForTag(tag string) (Language, bool) {
	l, ok := byTag[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return Unknown, false
	}
	return l, true
}

// All returns every supported language, excluding Unknown, in tag table order.
func All() []Language {
	out := make([]Language, 0, len(table)-1)
	for l := Language(1); int(l) < len(table); l++ {
		out = append(out, l)
	}
	return out
}

// Next returns the language following l in All order, wrapping through
// Unknown. Used to cycle an explicit assignment.
func (l Language) Next() Language {
	if int(l)+1 >= len(table) || l < Unknown {
		return Unknown
	}
	return l + 1
}
