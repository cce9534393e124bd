// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/codecache/main.go
// Summary: CodeCache entry point.
// Usage: `codecache` opens the snippet browser; `-classify`, `-import` and
// `-search` run one command and exit; piped stdin is stored as a snippet.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/simon0302010/codecache/apps/codecache"
	"github.com/simon0302010/codecache/classify"
	"github.com/simon0302010/codecache/config"
	"github.com/simon0302010/codecache/grammar"
	"github.com/simon0302010/codecache/highlight"
	"github.com/simon0302010/codecache/ingest"
	"github.com/simon0302010/codecache/internal/devshell"
	"github.com/simon0302010/codecache/internal/theming"
	"github.com/simon0302010/codecache/store"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout io.Writer) error {
	fs := flag.NewFlagSet("codecache", flag.ContinueOnError)
	logPath := fs.String("log", "", "Log file (default: <config dir>/codecache/codecache.log)")
	classifyMode := fs.Bool("classify", false, "Print the language tag of the file argument (or stdin) and exit")
	importPath := fs.String("import", "", "Append a file as a snippet and exit")
	query := fs.String("search", "", "Print snippets containing the query and exit")
	searchLimit := fs.Int("limit", 20, "Maximum number of search results")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	closeLog, err := setupLogging(*logPath)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("CodeCache %s starting", version)

	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: continuing with defaults: %v", err)
	}

	// Grammar and style tables are built once and shared read-only.
	tables := grammar.Load(grammar.Options{
		StyleName: cfg.GetString("highlight", "style", config.DefaultHighlightStyle),
	})
	classifier := classify.New(tables,
		classify.WithCache(cfg.GetInt("classify", "cache_size", config.DefaultCacheSize)))

	if *classifyMode {
		return classifyInput(fs.Arg(0), stdin, stdout, classifier)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	switch {
	case *importPath != "":
		sn, err := ingest.File(*importPath, classifier)
		if err != nil {
			return fmt.Errorf("import %s: %w", *importPath, err)
		}
		if err := st.Append(sn); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %q as %s\n", sn.Title, sn.Lang)
		return nil
	case *query != "":
		return printSearch(st, *query, *searchLimit, stdout)
	case stdin != nil && !term.IsTerminal(int(stdin.Fd())):
		return appendStdin(st, stdin, classifier, stdout)
	}

	palette := theming.FromConfig(cfg)
	app := codecache.New(st, classifier, highlight.New(tables), codecache.Options{
		Version:        version,
		ScrollPadding:  cfg.GetInt("list", "scroll_padding", config.DefaultScrollPadding),
		FrameInterval:  cfg.GetMillis("list", "frame_ms", 0),
		ScrollFocus:    cfg.GetMillis("list", "scroll_focus_ms", 0),
		HighlightCache: cfg.GetInt("classify", "cache_size", config.DefaultCacheSize),
		Palette:        &palette,
	})
	return devshell.Run(app)
}

func setupLogging(path string) (func(), error) {
	if path == "" {
		p, err := config.Path("codecache.log")
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}, nil
}

func openStore(cfg config.Config) (*store.Store, error) {
	path := cfg.GetString("storage", "file", "")
	if path == "" {
		p, err := config.Path("snippets.json")
		if err != nil {
			return nil, fmt.Errorf("resolve snippet path: %w", err)
		}
		path = p
	}
	st, err := store.Open(path)
	if err != nil {
		log.Printf("[STORE] Starting with an empty collection: %v", err)
	}
	if !cfg.GetBool("storage", "search_index", true) {
		return st, nil
	}

	indexPath := cfg.GetString("storage", "index_file", "")
	if indexPath == "" {
		indexPath = strings.TrimSuffix(path, filepath.Ext(path)) + ".db"
	}
	idx, err := store.OpenIndex(indexPath)
	if err != nil {
		log.Printf("[SEARCH_INDEX] Disabled: %v", err)
		return st, nil
	}
	if err := st.AttachIndex(idx); err != nil {
		log.Printf("[SEARCH_INDEX] Initial rebuild failed: %v", err)
	}
	return st, nil
}

func classifyInput(path string, stdin io.Reader, stdout io.Writer, c *classify.Classifier) error {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	res := c.Best(ingest.Clean(string(data)))
	log.Printf("[CLASSIFY] %s (score %d)", res.Language.Tag(), res.Score)
	fmt.Fprintln(stdout, res.Language.Tag())
	return nil
}

func printSearch(st *store.Store, query string, limit int, stdout io.Writer) error {
	hits, err := st.Search(query, limit)
	if err != nil {
		return err
	}
	for _, h := range hits {
		lang := h.Snippet.Lang
		if lang == "" {
			lang = "?"
		}
		fmt.Fprintf(stdout, "%d\t%s\t%s\n", h.Index, lang, h.Snippet.Title)
	}
	return nil
}

func appendStdin(st *store.Store, stdin io.Reader, c *classify.Classifier, stdout io.Writer) error {
	data, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	sn, err := ingest.Text(string(data), c)
	if errors.Is(err, ingest.ErrEmpty) {
		return errors.New("stdin was empty")
	}
	if err != nil {
		return err
	}
	if err := st.Append(sn); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Stored snippet #%d as %s\n", st.Len(), sn.Lang)
	return nil
}
