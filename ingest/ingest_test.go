// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simon0302010/codecache/language"
)

type fixedClassifier struct {
	lang  language.Language
	calls int
}

func (f *fixedClassifier) Classify(string) language.Language {
	f.calls++
	return f.lang
}

func TestClean(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  \n\tfn main() {}\n", "fn main() {}\n"},
		{"a\x00b\x1bc", "abc"},
		{"line1\r\nline2", "line1\nline2"},
		{"keep\ttabs\nand newlines", "keep\ttabs\nand newlines"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Clean(tc.in); got != tc.want {
			t.Errorf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTextClassifies(t *testing.T) {
	c := &fixedClassifier{lang: language.Rust}
	sn, err := Text("\n\nfn main() {}", c)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if sn.Lang != "rs" || sn.Code != "fn main() {}" {
		t.Fatalf("snippet = %+v", sn)
	}
	if _, err := Text(" \x07\n\t", c); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestClipboardUsesReader(t *testing.T) {
	defer func(orig func() (string, error)) { readClipboard = orig }(readClipboard)

	readClipboard = func() (string, error) { return "print('hi')", nil }
	sn, err := Clipboard(&fixedClassifier{lang: language.Python})
	if err != nil {
		t.Fatalf("Clipboard: %v", err)
	}
	if sn.Lang != "py" {
		t.Fatalf("lang = %q", sn.Lang)
	}

	readClipboard = func() (string, error) { return "", errors.New("no display") }
	if _, err := Clipboard(&fixedClassifier{}); err == nil {
		t.Fatal("expected clipboard error")
	}
}

func TestFileUsesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := &fixedClassifier{lang: language.Python}
	sn, err := File(path, c)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sn.Lang != "go" || sn.Title != "main.go" {
		t.Fatalf("snippet = %+v", sn)
	}
	if c.calls != 0 {
		t.Fatal("classifier consulted although the extension was conclusive")
	}
}

func TestFileFallsBackToClassifier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.unknownext")
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c := &fixedClassifier{lang: language.Rust}
	sn, err := File(path, c)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if sn.Lang != "rs" || c.calls != 1 {
		t.Fatalf("snippet = %+v, calls = %d", sn, c.calls)
	}
}

func TestFileRejectsBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	if err := os.WriteFile(path, []byte{0x7f, 'E', 'L', 'F', 0, 0, 0, 1, 2, 0}, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := File(path, &fixedClassifier{}); !errors.Is(err, ErrBinary) {
		t.Fatalf("expected ErrBinary, got %v", err)
	}
}
