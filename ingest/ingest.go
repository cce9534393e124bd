// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ingest/ingest.go
// Summary: Turns clipboard text, pastes and files into snippets.

package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/go-enry/go-enry/v2"

	"github.com/simon0302010/codecache/language"
	"github.com/simon0302010/codecache/store"
)

var (
	// ErrEmpty is returned when nothing but whitespace is left after cleaning.
	ErrEmpty = errors.New("ingest: empty input")
	// ErrBinary is returned for content that is not text.
	ErrBinary = errors.New("ingest: binary content")
)

// Classifier picks a language for code.
type Classifier interface {
	Classify(code string) language.Language
}

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadAll

// enryNames maps go-enry language names onto the tag vocabulary.
var enryNames = map[string]language.Language{
	"Python":     language.Python,
	"Go":         language.Go,
	"Java":       language.Java,
	"C":          language.C,
	"C++":        language.CPP,
	"HTML":       language.HTML,
	"CSS":        language.CSS,
	"C#":         language.CSharp,
	"YAML":       language.YAML,
	"JSON":       language.JSON,
	"TOML":       language.TOML,
	"Shell":      language.Bash,
	"Markdown":   language.Markdown,
	"Rust":       language.Rust,
	"TypeScript": language.TypeScript,
	"JavaScript": language.JavaScript,
}

// Clean drops control characters other than newline and tab, normalises
// CRLF line endings, and trims leading whitespace.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimLeftFunc(cleaned, unicode.IsSpace)
}

// Text builds a snippet from raw text, classifying it with c.
func Text(raw string, c Classifier) (store.Snippet, error) {
	code := Clean(raw)
	if strings.TrimSpace(code) == "" {
		return store.Snippet{}, ErrEmpty
	}
	lang := c.Classify(code)
	return store.Snippet{
		Title:       "Pasted snippet",
		Description: fmt.Sprintf("Detected as %s", lang.Name()),
		Code:        code,
		Lang:        lang.Tag(),
	}, nil
}

// Clipboard reads the system clipboard and builds a snippet from it.
func Clipboard(c Classifier) (store.Snippet, error) {
	raw, err := readClipboard()
	if err != nil {
		return store.Snippet{}, fmt.Errorf("read clipboard: %w", err)
	}
	return Text(raw, c)
}

// File reads path and builds a snippet titled after the file. The tag comes
// from go-enry when it names a known language, otherwise from c.
func File(path string, c Classifier) (store.Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Snippet{}, fmt.Errorf("read %s: %w", path, err)
	}
	if enry.IsBinary(data) {
		return store.Snippet{}, ErrBinary
	}
	code := Clean(string(data))
	if strings.TrimSpace(code) == "" {
		return store.Snippet{}, ErrEmpty
	}

	lang, ok := DetectFile(path, data)
	if !ok {
		lang = c.Classify(code)
	}
	return store.Snippet{
		Title:       filepath.Base(path),
		Description: fmt.Sprintf("Imported from %s", path),
		Code:        code,
		Lang:        lang.Tag(),
	}, nil
}

// DetectFile identifies the language of a file by name and content using
// go-enry. It reports false when enry finds nothing in the vocabulary.
func DetectFile(path string, content []byte) (language.Language, bool) {
	name := filepath.Base(path)
	if l, ok := enryNames[enry.GetLanguage(name, content)]; ok {
		return l, true
	}
	if found, safe := enry.GetLanguageByExtension(name); safe {
		if l, ok := enryNames[found]; ok {
			return l, true
		}
	}
	if found, safe := enry.GetLanguageByFilename(name); safe {
		if l, ok := enryNames[found]; ok {
			return l, true
		}
	}
	return language.Unknown, false
}
