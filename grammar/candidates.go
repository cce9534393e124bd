// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: grammar/candidates.go
// Summary: Ordered tree-sitter grammars tried during classification.

package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"
	clang "github.com/smacker/go-tree-sitter/c"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	golang "github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"

	"github.com/simon0302010/codecache/language"
)

// Candidate pairs a language with the constructor of its grammar.
type Candidate struct {
	Language language.Language
	Grammar  func() *sitter.Language
}

// Bind returns the tree-sitter grammar for c, or nil if it cannot be bound.
func (c Candidate) Bind() *sitter.Language {
	if c.Grammar == nil {
		return nil
	}
	return c.Grammar()
}

// DefaultCandidates returns the classification order. The first grammar to
// parse a snippet cleanly wins, so stricter grammars come before permissive
// ones: C before C++, JavaScript before TypeScript, Java before C#, and the
// data formats before everything that would accept them as expressions.
// Grammars that accept free prose (bash, markdown, yaml, html, css) are not
// candidates; CSS reads a plain sentence as selectors with a single error.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{language.JSON, func() *sitter.Language { return sitter.NewLanguage(tsjson.Language()) }},
		{language.TOML, toml.GetLanguage},
		{language.Rust, rust.GetLanguage},
		{language.Go, golang.GetLanguage},
		{language.Java, java.GetLanguage},
		{language.CSharp, csharp.GetLanguage},
		{language.C, clang.GetLanguage},
		{language.CPP, cpplang.GetLanguage},
		{language.JavaScript, javascript.GetLanguage},
		{language.TypeScript, tslang.GetLanguage},
		{language.Python, python.GetLanguage},
	}
}
