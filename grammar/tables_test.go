// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grammar

import (
	"testing"

	"github.com/simon0302010/codecache/language"
)

func TestLoadBindsEveryTag(t *testing.T) {
	tables := Load(Options{})
	for _, l := range language.All() {
		if !tables.HasLexer(l) {
			t.Errorf("no lexer for %s (%q)", l.Name(), l.Tag())
		}
	}
	if tables.HasLexer(language.Unknown) {
		t.Fatal("unknown must not resolve to a lexer")
	}
	if tables.Style() == nil {
		t.Fatal("expected a style")
	}
}

func TestLexerIgnoresTagCase(t *testing.T) {
	tables := Load(Options{})
	for _, tag := range []string{"RS", " rs ", "Py"} {
		if _, ok := tables.Lexer(tag); !ok {
			t.Errorf("no lexer for %q", tag)
		}
	}
}

func TestUnknownStyleFallsBack(t *testing.T) {
	tables := Load(Options{StyleName: "no-such-style"})
	if tables.Style() == nil {
		t.Fatal("expected fallback style")
	}
}

func TestDefaultCandidatesBind(t *testing.T) {
	cands := DefaultCandidates()
	if len(cands) == 0 {
		t.Fatal("expected candidates")
	}
	if cands[0].Language != language.JSON {
		t.Errorf("first candidate = %v, want JSON", cands[0].Language)
	}
	for _, c := range cands {
		switch c.Language {
		case language.CSS, language.Bash, language.Markdown, language.YAML, language.HTML:
			t.Errorf("%s accepts prose and must not be a candidate", c.Language.Name())
		}
		if c.Bind() == nil {
			t.Errorf("grammar for %s did not bind", c.Language.Name())
		}
	}
}

func TestCandidatesAreCopied(t *testing.T) {
	tables := Load(Options{})
	got := tables.Candidates()
	got[0].Language = language.Markdown
	if tables.Candidates()[0].Language == language.Markdown {
		t.Fatal("Candidates exposed internal slice")
	}
}

func TestNilGrammarAbstains(t *testing.T) {
	c := Candidate{Language: language.Go}
	if c.Bind() != nil {
		t.Fatal("expected nil grammar")
	}
}
