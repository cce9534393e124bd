// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: Snippet collection persisted to a JSON file.

package store

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
)

// Store owns the snippet collection. Every mutation is written through to
// the file and, when attached, to the search index.
type Store struct {
	mu       sync.RWMutex
	path     string
	snippets []Snippet
	index    *Index
}

// Open loads the collection at path. A malformed file leaves the store
// empty and returns the parse error alongside a usable store.
func Open(path string) (*Store, error) {
	snippets, err := LoadFile(path)
	s := &Store{path: path, snippets: snippets}
	if err == nil {
		log.Printf("[STORE] Loaded %d snippets from %s", len(snippets), path)
	}
	return s, err
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// AttachIndex makes the store keep idx in sync and rebuilds it now.
func (s *Store) AttachIndex(idx *Index) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = idx
	if idx == nil {
		return nil
	}
	return idx.Rebuild(s.snippets)
}

// Len returns the number of snippets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snippets)
}

// Snippets returns a copy of the collection.
func (s *Store) Snippets() []Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Snippet, len(s.snippets))
	copy(out, s.snippets)
	return out
}

// Get returns the snippet at i.
func (s *Store) Get(i int) (Snippet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.snippets) {
		return Snippet{}, false
	}
	return s.snippets[i], true
}

// Append adds a snippet to the end of the collection.
func (s *Store) Append(sn Snippet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(append(slices.Clone(s.snippets), sn))
}

// Delete removes the snippet at i.
func (s *Store) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.snippets) {
		return fmt.Errorf("delete snippet %d: out of range", i)
	}
	return s.replaceLocked(slices.Delete(slices.Clone(s.snippets), i, i+1))
}

// SetLang replaces the language tag of the snippet at i.
func (s *Store) SetLang(i int, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.snippets) {
		return fmt.Errorf("set language of snippet %d: out of range", i)
	}
	next := slices.Clone(s.snippets)
	next[i].Lang = tag
	return s.replaceLocked(next)
}

// Search finds snippets containing query. Without an index it falls back
// to a case-insensitive scan of the collection.
func (s *Store) Search(query string, limit int) ([]Hit, error) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	if idx != nil {
		return idx.Search(query, limit)
	}
	if query == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(query)
	var hits []Hit
	for i, sn := range s.snippets {
		if limit > 0 && len(hits) == limit {
			break
		}
		if strings.Contains(strings.ToLower(sn.Title), needle) ||
			strings.Contains(strings.ToLower(sn.Description), needle) ||
			strings.Contains(strings.ToLower(sn.Code), needle) {
			hits = append(hits, Hit{Index: i, Snippet: sn})
		}
	}
	return hits, nil
}

// Close releases the attached index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}

// replaceLocked installs next and writes it out. The previous collection is
// kept when the file cannot be saved.
func (s *Store) replaceLocked(next []Snippet) error {
	prev := s.snippets
	s.snippets = next
	if err := s.commitLocked(); err != nil {
		s.snippets = prev
		return err
	}
	return nil
}

func (s *Store) commitLocked() error {
	if err := SaveFile(s.path, s.snippets); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Rebuild(s.snippets); err != nil {
			log.Printf("[SEARCH_INDEX] Failed to update index: %v", err)
		}
	}
	return nil
}
