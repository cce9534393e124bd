// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/index.go
// Summary: SQLite FTS5 search index over stored snippets.
//
// The index mirrors the snippet file: rows are keyed by position and the
// whole table is rewritten whenever the collection changes. Matching is
// substring based through the trigram tokenizer.

package store

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// Bump when the schema changes in a way that needs the FTS table rebuilt.
const indexSchemaVersion = 1

const indexSchema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS snippets (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    code TEXT NOT NULL,
    lang TEXT NOT NULL
);
`

const indexFTSSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS snippets_fts USING fts5(
    title,
    description,
    code,
    content='snippets',
    content_rowid='id',
    tokenize='trigram'
);

CREATE TRIGGER IF NOT EXISTS snippets_ai AFTER INSERT ON snippets BEGIN
    INSERT INTO snippets_fts(rowid, title, description, code)
    VALUES (new.id, new.title, new.description, new.code);
END;

CREATE TRIGGER IF NOT EXISTS snippets_ad AFTER DELETE ON snippets BEGIN
    INSERT INTO snippets_fts(snippets_fts, rowid, title, description, code)
    VALUES ('delete', old.id, old.title, old.description, old.code);
END;
`

// Hit is one search match. Index is the snippet's position in the collection.
type Hit struct {
	Index   int
	Snippet Snippet
}

// Index is a SQLite-backed full-text index of snippets.
type Index struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	needsReindex, err := migrateIndexSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}
	if _, err := db.Exec(indexFTSSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create FTS schema: %w", err)
	}
	if needsReindex {
		log.Printf("[SEARCH_INDEX] Schema version changed, rebuilding FTS index")
		if _, err := db.Exec(`INSERT INTO snippets_fts(snippets_fts) VALUES ('rebuild')`); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to rebuild FTS index: %w", err)
		}
	}
	return &Index{db: db}, nil
}

// migrateIndexSchema drops the FTS table and triggers when the stored schema
// version differs. It reports whether the FTS table must be repopulated.
func migrateIndexSchema(db *sql.DB) (bool, error) {
	var current int
	if err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current); err != nil {
		current = 0
	}
	if current == indexSchemaVersion {
		return false, nil
	}

	log.Printf("[SEARCH_INDEX] Migrating schema from version %d to %d", current, indexSchemaVersion)
	for _, stmt := range []string{
		"DROP TRIGGER IF EXISTS snippets_ai",
		"DROP TRIGGER IF EXISTS snippets_ad",
		"DROP TABLE IF EXISTS snippets_fts",
		"DELETE FROM schema_version",
	} {
		if _, err := db.Exec(stmt); err != nil {
			return false, fmt.Errorf("migration failed on '%s': %w", stmt, err)
		}
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", indexSchemaVersion); err != nil {
		return false, fmt.Errorf("failed to update schema version: %w", err)
	}
	return true, nil
}

// Rebuild replaces the indexed rows with snippets in one transaction.
func (ix *Index) Rebuild(snippets []Snippet) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snippets"); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear index: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO snippets (id, title, description, code, lang) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, s := range snippets {
		if _, err := stmt.Exec(i, s.Title, s.Description, s.Code, s.Lang); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert snippet %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	return nil
}

// Search returns up to limit snippets containing query in their title,
// description or code, in collection order. Queries shorter than three
// characters cannot form a trigram and use LIKE instead.
func (ix *Index) Search(query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var rows *sql.Rows
	var err error
	if utf8.RuneCountInString(query) < 3 {
		like := "%" + strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query) + "%"
		rows, err = ix.db.Query(`
			SELECT id, title, description, code, lang
			FROM snippets
			WHERE title LIKE ?1 ESCAPE '\' OR description LIKE ?1 ESCAPE '\' OR code LIKE ?1 ESCAPE '\'
			ORDER BY id
			LIMIT ?2
		`, like, limit)
	} else {
		quoted := `"` + strings.ReplaceAll(query, `"`, `""`) + `"`
		rows, err = ix.db.Query(`
			SELECT s.id, s.title, s.description, s.code, s.lang
			FROM snippets_fts
			JOIN snippets s ON s.id = snippets_fts.rowid
			WHERE snippets_fts MATCH ?
			ORDER BY s.id
			LIMIT ?
		`, quoted, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Index, &h.Snippet.Title, &h.Snippet.Description, &h.Snippet.Code, &h.Snippet.Lang); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
