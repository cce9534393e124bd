// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestIndex(t *testing.T) (*Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippets.db")
	idx, err := OpenIndex(path)
	if err != nil {
		t.Fatalf("failed to create index: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx, path
}

var sample = []Snippet{
	{Title: "Hello World", Description: "Rust sample", Code: "fn main() {\n    println!(\"Hello, world!\");\n}", Lang: "rs"},
	{Title: "Server", Description: "HTTP listener", Code: "http.ListenAndServe(\":8080\", nil)", Lang: "go"},
	{Title: "Query", Description: "", Code: "SELECT * FROM users;", Lang: "unknown"},
}

func TestIndexCreatesDatabase(t *testing.T) {
	_, path := openTestIndex(t)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("database file not created")
	}
}

func TestIndexSubstringSearch(t *testing.T) {
	idx, _ := openTestIndex(t)
	if err := idx.Rebuild(sample); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	hits, err := idx.Search("ListenAndServe", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != 1 || hits[0].Snippet.Lang != "go" {
		t.Fatalf("hits = %+v", hits)
	}

	hits, err = idx.Search("rust", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != 0 {
		t.Fatalf("description match = %+v", hits)
	}
}

func TestIndexShortQueryUsesLike(t *testing.T) {
	idx, _ := openTestIndex(t)
	if err := idx.Rebuild(sample); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	hits, err := idx.Search("fn", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != 0 {
		t.Fatalf("hits = %+v", hits)
	}
	hits, err = idx.Search("%", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("wildcard should be literal, got %+v", hits)
	}
}

func TestIndexRebuildReplacesRows(t *testing.T) {
	idx, _ := openTestIndex(t)
	if err := idx.Rebuild(sample); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if err := idx.Rebuild(sample[2:]); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	hits, err := idx.Search("Hello", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(hits) != 0 {
		t.Fatalf("stale rows after rebuild: %+v", hits)
	}
	hits, _ = idx.Search("users", 10)
	if len(hits) != 1 || hits[0].Index != 0 {
		t.Fatalf("hits = %+v", hits)
	}
}

func TestIndexReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.db")
	idx, err := OpenIndex(path)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	if err := idx.Rebuild(sample); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	idx.Close()

	idx, err = OpenIndex(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx.Close()
	hits, err := idx.Search("println", 10)
	if err != nil || len(hits) != 1 {
		t.Fatalf("hits = %+v, err = %v", hits, err)
	}
}

func TestStoreKeepsIndexInSync(t *testing.T) {
	idx, _ := openTestIndex(t)
	s, _ := Open(filepath.Join(t.TempDir(), "s.json"))
	if err := s.AttachIndex(idx); err != nil {
		t.Fatalf("AttachIndex: %v", err)
	}
	if err := s.Append(sample[1]); err != nil {
		t.Fatalf("Append: %v", err)
	}
	hits, err := s.Search("listener", 5)
	if err != nil || len(hits) != 1 {
		t.Fatalf("hits = %+v, err = %v", hits, err)
	}
	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if hits, _ := s.Search("listener", 5); len(hits) != 0 {
		t.Fatalf("deleted snippet still indexed: %+v", hits)
	}
}
