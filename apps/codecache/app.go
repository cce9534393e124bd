// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/codecache/app.go
// Summary: The snippet browser: title bar, snippet list, status bar.
// Binds the store, classifier, highlighter and list engine together and
// maps keys and pastes onto store mutations.

package codecache

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/simon0302010/codecache/highlight"
	"github.com/simon0302010/codecache/ingest"
	"github.com/simon0302010/codecache/internal/lru"
	"github.com/simon0302010/codecache/internal/theming"
	"github.com/simon0302010/codecache/language"
	"github.com/simon0302010/codecache/store"
	"github.com/simon0302010/codecache/texelui/core"
	"github.com/simon0302010/codecache/texelui/scroll"
)

// HelloWorld is the sample added by Enter. Its empty tag is resolved by
// the classifier when drawn.
var HelloWorld = store.Snippet{
	Title:       "Hello World",
	Description: "Hello World",
	Code:        "fn main() {\n    println!(\"Hello World!\");\n}",
}

// Classifier resolves the language of untagged snippets.
type Classifier interface {
	Classify(code string) language.Language
}

// Highlighter turns code into styled fragments.
type Highlighter interface {
	Highlight(code, tag string) (highlight.Fragment, bool)
}

// Options tunes the app. Zero values fall back to defaults.
type Options struct {
	Version        string
	ScrollPadding  int
	FrameInterval  time.Duration
	ScrollFocus    time.Duration
	HighlightCache int
	Palette        *theming.Palette
	// Clipboard overrides ingest.Clipboard; used by tests.
	Clipboard func(ingest.Classifier) (store.Snippet, error)
}

type direction int

const (
	dirNone direction = iota
	dirUp
	dirDown
)

type fragmentKey struct {
	code string
	tag  string
}

// App is the CodeCache snippet browser.
type App struct {
	mu sync.Mutex

	store       *store.Store
	classifier  Classifier
	highlighter Highlighter
	palette     theming.Palette
	opts        Options
	fragments   *lru.Cache[fragmentKey, highlight.Fragment]

	width, height int
	state         scroll.State
	lastMove      time.Time
	moveDir       direction
	focusShown    bool
	notice        string

	now      func() time.Time
	notifier core.Notifier
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates the app over st.
func New(st *store.Store, c Classifier, h Highlighter, opts Options) *App {
	if opts.ScrollPadding < 0 {
		opts.ScrollPadding = 0
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if opts.ScrollFocus <= 0 {
		opts.ScrollFocus = 500 * time.Millisecond
	}
	if opts.Clipboard == nil {
		opts.Clipboard = ingest.Clipboard
	}
	palette := theming.Default()
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	a := &App{
		store:       st,
		classifier:  c,
		highlighter: h,
		palette:     palette,
		opts:        opts,
		state:       scroll.NewState(),
		now:         time.Now,
		stop:        make(chan struct{}),
	}
	if opts.HighlightCache > 0 {
		a.fragments = lru.New[fragmentKey, highlight.Fragment](opts.HighlightCache)
	}
	return a
}

// GetTitle returns the window title.
func (a *App) GetTitle() string {
	if a.opts.Version == "" {
		return "CodeCache"
	}
	return "CodeCache v" + a.opts.Version
}

// Run ticks at the frame interval until Stop. It only asks for a redraw
// when the scrollbar focus highlight has expired since the last frame.
func (a *App) Run() error {
	ticker := time.NewTicker(a.opts.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.stop:
			return nil
		case <-ticker.C:
			a.mu.Lock()
			stale := a.focusShown && !a.scrollActiveLocked()
			a.mu.Unlock()
			if stale {
				a.notifier.Request()
			}
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

// Done is closed once the app has been asked to quit.
func (a *App) Done() <-chan struct{} { return a.stop }

// SetRefreshNotifier sets the channel used to request redraws.
func (a *App) SetRefreshNotifier(ch chan<- bool) { a.notifier.Set(ch) }

// Resize records the screen size.
func (a *App) Resize(cols, rows int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.width, a.height = cols, rows
}

// Selected returns the selected index or scroll.NoSelection.
func (a *App) Selected() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Selected
}

// HandleKey applies one key press.
func (a *App) HandleKey(ev *tcell.EventKey) {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := a.store.Len()
	switch ev.Key() {
	case tcell.KeyDown, tcell.KeyPgDn:
		a.state = a.state.Next(count)
		a.markMoveLocked(dirDown)
	case tcell.KeyUp, tcell.KeyPgUp:
		a.state = a.state.Previous(count)
		a.markMoveLocked(dirUp)
	case tcell.KeyEnter:
		a.appendLocked(HelloWorld)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.Stop()
		case 'p':
			sn, err := a.opts.Clipboard(a.classifier)
			if err != nil {
				a.reportLocked("paste", err)
				return
			}
			a.appendLocked(sn)
		case 'd':
			a.deleteSelectedLocked()
		case 'l':
			a.cycleLanguageLocked()
		}
	}
}

// HandlePaste appends bracketed paste content as a new snippet.
func (a *App) HandlePaste(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	sn, err := ingest.Text(string(data), a.classifier)
	if err != nil {
		a.reportLocked("paste", err)
		return
	}
	a.appendLocked(sn)
}

func (a *App) markMoveLocked(dir direction) {
	a.lastMove = a.now()
	a.moveDir = dir
}

func (a *App) scrollActiveLocked() bool {
	return !a.lastMove.IsZero() && a.now().Sub(a.lastMove) <= a.opts.ScrollFocus
}

func (a *App) appendLocked(sn store.Snippet) {
	if err := a.store.Append(sn); err != nil {
		a.reportLocked("save", err)
		return
	}
	a.notice = ""
}

func (a *App) deleteSelectedLocked() {
	if !a.state.HasSelection() {
		return
	}
	if err := a.store.Delete(a.state.Selected); err != nil {
		a.reportLocked("delete", err)
		return
	}
	a.state = a.state.Clamp(a.store.Len())
}

// cycleLanguageLocked assigns the next tag in the vocabulary to the
// selected snippet. An untagged snippet starts from its detected language.
func (a *App) cycleLanguageLocked() {
	sn, ok := a.store.Get(a.state.Selected)
	if !ok {
		return
	}
	lang, _ := a.resolve(sn)
	if err := a.store.SetLang(a.state.Selected, lang.Next().Tag()); err != nil {
		a.reportLocked("save", err)
	}
}

func (a *App) reportLocked(what string, err error) {
	switch {
	case errors.Is(err, ingest.ErrEmpty):
		a.notice = "nothing to paste"
	default:
		log.Printf("[STORE] %s failed: %v", what, err)
		a.notice = fmt.Sprintf("%s failed: %v", what, err)
	}
}

// resolve returns the language of sn and the tag to highlight it with.
// Explicit tags are kept even when they are outside the vocabulary.
func (a *App) resolve(sn store.Snippet) (language.Language, string) {
	tag := strings.TrimSpace(sn.Lang)
	if tag == "" {
		lang := a.classifier.Classify(sn.Code)
		return lang, lang.Tag()
	}
	lang, _ := language.ForTag(tag)
	return lang, tag
}

func (a *App) fragment(code, tag string) highlight.Fragment {
	key := fragmentKey{code: code, tag: tag}
	if a.fragments != nil {
		if f, ok := a.fragments.Get(key); ok {
			return f
		}
	}
	f, _ := a.highlighter.Highlight(code, tag)
	if a.fragments != nil {
		a.fragments.Set(key, f)
	}
	return f
}

// Render draws the whole screen.
func (a *App) Render() [][]core.Cell {
	a.mu.Lock()
	defer a.mu.Unlock()

	w, h := a.width, a.height
	buf := core.NewBuffer(w, h, tcell.StyleDefault)
	if w <= 0 || h <= 0 {
		return buf
	}
	p := core.NewPainter(buf)
	snippets := a.store.Snippets()

	drawCentered(p, 0, w, a.GetTitle(), a.palette.Title())
	if h < 3 {
		return buf
	}
	status := fmt.Sprintf("%d snippets in storage", len(snippets))
	if a.notice != "" {
		status += " | " + a.notice
	}
	drawCentered(p, h-1, w, status, tcell.StyleDefault)

	area := core.Rect{X: 0, Y: 1, W: w, H: h - 2}
	plan := scroll.Layout(Heights(snippets), a.state, area.H, a.opts.ScrollPadding)
	a.state = plan.State

	list := p.WithClip(area)
	for _, pl := range plan.Items {
		if !pl.Visible {
			continue
		}
		sn := snippets[pl.Index]
		lang, tag := a.resolve(sn)
		body, border := a.palette.ItemStyles(pl.Index, pl.Index == plan.State.Selected)
		drawItem(list, itemBox(area, area.Y+pl.Y, pl.Height), item{
			snippet: sn,
			lang:    lang,
			code:    a.fragment(sn.Code, tag),
			body:    body,
			border:  border,
		})
	}

	a.focusShown = a.scrollActiveLocked()
	if len(snippets) > 0 {
		a.drawScrollbar(p, area, len(snippets))
	}
	return buf
}

func (a *App) drawScrollbar(p *core.Painter, area core.Rect, count int) {
	active := a.focusShown
	cfg := scroll.DefaultScrollbarConfig(a.palette.Scrollbar(false))
	cfg.ThumbStyle = a.palette.Scrollbar(active)
	cfg.BeginStyle = a.palette.Scrollbar(active && a.moveDir == dirUp)
	cfg.EndStyle = a.palette.Scrollbar(active && a.moveDir == dirDown)

	track := core.Rect{X: area.X, Y: area.Y + 1, W: area.W, H: area.H - 2}
	scroll.DrawScrollbar(p, track, max(a.state.Selected, 0), count, cfg)
}

func drawCentered(p *core.Painter, y, width int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, width, "…")
	x := (width - runewidth.StringWidth(text)) / 2
	p.DrawText(x, y, x, text, style)
}
