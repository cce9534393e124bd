// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/snippet.go
// Summary: Snippet record and its JSON file format.

package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Snippet is one stored code sample. Lang holds a language tag verbatim;
// an empty tag means the snippet has not been classified yet.
type Snippet struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
	Code        string `json:"code"`
	Lang        string `json:"lang"`
}

// LoadFile reads a JSON array of snippets. A missing file is an empty
// collection. A malformed file is reported and also yields an empty
// collection so the caller can keep running.
func LoadFile(path string) ([]Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snippets: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var snippets []Snippet
	if err := json.Unmarshal(data, &snippets); err != nil {
		log.Printf("[STORE] Ignoring malformed snippet file %s: %v", path, err)
		return nil, fmt.Errorf("parse snippets %s: %w", path, err)
	}
	return snippets, nil
}

// SaveFile writes snippets to path, replacing it atomically.
func SaveFile(path string, snippets []Snippet) error {
	if snippets == nil {
		snippets = []Snippet{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snippet dir: %w", err)
	}
	data, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snippets: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snippets-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snippets: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snippets: %w", err)
	}
	return nil
}
