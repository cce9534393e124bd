// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: classify/classify.go
// Summary: Structural language guessing over tree-sitter parse trees.
//
// Each candidate grammar parses the whole snippet from scratch. A clean parse
// with more than one node is accepted immediately; otherwise candidates are
// ranked by nodes - 10*errors and the best positive score wins, first seen
// on ties. Nothing here can fail: grammars that cannot be bound or trees that
// cannot be built simply abstain.

package classify

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/simon0302010/codecache/grammar"
	"github.com/simon0302010/codecache/internal/lru"
	"github.com/simon0302010/codecache/language"
)

// ErrorWeight is the score penalty for each error or missing node.
const ErrorWeight = 10

// Metrics are the structural counts taken from one parse tree.
type Metrics struct {
	Nodes  int
	Errors int
}

// Score ranks a parse. Only comparable within one classification pass.
func (m Metrics) Score() int {
	return m.Nodes - m.Errors*ErrorWeight
}

// Confident reports whether the parse is clean and non-trivial.
func (m Metrics) Confident() bool {
	return m.Errors == 0 && m.Nodes > 1
}

// Result is the outcome of a classification pass.
type Result struct {
	Language language.Language
	Score    int
}

// Measurer parses src with a candidate's grammar. ok is false when the
// candidate abstains.
type Measurer func(c grammar.Candidate, src []byte) (m Metrics, ok bool)

// Classifier picks the most plausible language for a snippet.
type Classifier struct {
	tables  *grammar.Tables
	measure Measurer
	cache   *lru.Cache[string, Result]
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCache memoizes results by exact snippet text. size <= 0 disables it.
func WithCache(size int) Option {
	return func(c *Classifier) {
		if size > 0 {
			c.cache = lru.New[string, Result](size)
		}
	}
}

// WithMeasurer replaces the tree-sitter measurer.
func WithMeasurer(m Measurer) Option {
	return func(c *Classifier) {
		if m != nil {
			c.measure = m
		}
	}
}

// New creates a classifier over the candidates in tables.
func New(tables *grammar.Tables, opts ...Option) *Classifier {
	c := &Classifier{
		tables:  tables,
		measure: MeasureTree,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the best-guess language, or language.Unknown.
func (c *Classifier) Classify(code string) language.Language {
	return c.Best(code).Language
}

// Best returns the winning language together with its score.
func (c *Classifier) Best(code string) Result {
	if strings.TrimSpace(code) == "" {
		return Result{Language: language.Unknown}
	}
	if c.cache != nil {
		if r, ok := c.cache.Get(code); ok {
			return r
		}
	}

	src := []byte(code)
	r := Pick(c.tables.Candidates(), func(cand grammar.Candidate) (Metrics, bool) {
		return c.measure(cand, src)
	})

	if c.cache != nil {
		c.cache.Set(code, r)
	}
	return r
}

// Pick folds over the ordered candidates, stopping at the first confident parse.
func Pick(cands []grammar.Candidate, measure func(grammar.Candidate) (Metrics, bool)) Result {
	start := Result{Language: language.Unknown}
	return foldUntil(cands, start, func(best Result, cand grammar.Candidate) (Result, bool) {
		m, ok := measure(cand)
		if !ok {
			return best, false
		}
		next := Result{Language: cand.Language, Score: m.Score()}
		if m.Confident() {
			return next, true
		}
		return promote(best, next), false
	})
}

// promote keeps best unless next scores strictly higher and above zero.
func promote(best, next Result) Result {
	if next.Score > 0 && next.Score > best.Score {
		return next
	}
	return best
}

// foldUntil applies step left to right and stops as soon as step reports done.
func foldUntil[T, A any](xs []T, acc A, step func(A, T) (A, bool)) A {
	for _, x := range xs {
		var done bool
		if acc, done = step(acc, x); done {
			break
		}
	}
	return acc
}

// MeasureTree parses src with the candidate grammar and counts nodes.
func MeasureTree(cand grammar.Candidate, src []byte) (Metrics, bool) {
	lang := cand.Bind()
	if lang == nil {
		return Metrics{}, false
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil || tree == nil {
		return Metrics{}, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return Metrics{}, false
	}

	var m Metrics
	countNodes(root, &m)
	return m, true
}

func countNodes(n *sitter.Node, m *Metrics) {
	m.Nodes++
	if n.IsMissing() || n.Type() == "ERROR" {
		m.Errors++
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child != nil {
			countNodes(child, m)
		}
	}
}
