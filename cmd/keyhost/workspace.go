package main

import (
	"context"
	"slices"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/command"
	"github.com/ferrum-editor/ferrum/internal/input/condition"
	"github.com/ferrum-editor/ferrum/internal/input/key"
	"github.com/ferrum-editor/ferrum/internal/keybinding"
)

// paletteVisible is true while the command palette is open.
const paletteVisible = "paletteVisible"

// paletteRows is the number of palette results shown.
const paletteRows = 8

var (
	editorTarget  = key.Target{Kind: key.TargetEditor, ID: "editor.main"}
	searchTarget  = key.Target{Kind: key.TargetTextInput, ID: "search.query"}
	paletteTarget = key.Target{Kind: key.TargetTextInput, ID: "palette.query"}
)

type paletteState struct {
	query    []rune
	selected int
	results  []command.SearchResult
}

// workspace is the host's editable state. Command handlers and the key
// fallback mutate it; the view reads it through snapshot.
type workspace struct {
	svc    *keybinding.Service
	cmds   *command.Registry
	logger *zap.Logger

	mu      sync.Mutex
	focus   key.Target
	editor  []rune
	search  []rune
	palette *paletteState
	help    bool
	status  string

	quit    func()
	changed func()
}

func newWorkspace(svc *keybinding.Service, logger *zap.Logger) *workspace {
	w := &workspace{
		svc:     svc,
		cmds:    command.NewRegistry(svc, logger),
		logger:  logger,
		quit:    func() {},
		changed: func() {},
	}
	w.setFocus(editorTarget)
	return w
}

// Focus reports the focused element. It is the terminal source's FocusFunc.
func (w *workspace) Focus() key.Target {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focus
}

func (w *workspace) setFocus(t key.Target) {
	w.mu.Lock()
	w.focus = t
	w.mu.Unlock()
	w.svc.SetContextKey(condition.EditorFocus, t.Kind == key.TargetEditor)
}

func (w *workspace) setStatus(s string) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
	w.changed()
}

func (w *workspace) openPalette() {
	w.mu.Lock()
	w.palette = &paletteState{}
	w.help = false
	w.mu.Unlock()

	w.refreshPalette()
	w.setFocus(paletteTarget)
	w.svc.SetContextKey(paletteVisible, true)
}

func (w *workspace) closePalette() {
	w.mu.Lock()
	w.palette = nil
	w.mu.Unlock()

	w.setFocus(editorTarget)
	w.svc.SetContextKey(paletteVisible, false)
}

func (w *workspace) refreshPalette() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.palette == nil {
		return
	}
	w.palette.results = w.cmds.Search(string(w.palette.query), paletteRows)
	w.palette.selected = 0
}

func (w *workspace) movePalette(delta int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.palette == nil || len(w.palette.results) == 0 {
		return
	}
	n := len(w.palette.results)
	w.palette.selected = ((w.palette.selected+delta)%n + n) % n
}

// runSelected closes the palette and executes the selected command.
func (w *workspace) runSelected(ctx context.Context) error {
	w.mu.Lock()
	var id string
	if p := w.palette; p != nil && p.selected < len(p.results) {
		id = p.results[p.selected].Command.ID
	}
	w.mu.Unlock()

	w.closePalette()
	if id == "" {
		return nil
	}
	return w.cmds.Execute(ctx, id)
}

// typeKey is the default action for keys no binding consumed: printable
// characters are inserted into the focused field and Backspace deletes.
func (w *workspace) typeKey(ev *key.Event) {
	if ev.Ctrl || ev.Meta || ev.Alt {
		return
	}

	w.mu.Lock()
	buf := &w.editor
	switch {
	case w.palette != nil:
		buf = &w.palette.query
	case w.focus == searchTarget:
		buf = &w.search
	}

	edited := true
	switch {
	case ev.Key == "Backspace":
		if len(*buf) > 0 {
			*buf = (*buf)[:len(*buf)-1]
		}
	case ev.Key == "Enter" && buf == &w.editor:
		*buf = append(*buf, '\n')
	case utf8.RuneCountInString(ev.Key) == 1:
		r, _ := utf8.DecodeRuneInString(ev.Key)
		*buf = append(*buf, r)
	default:
		edited = false
	}
	inPalette := w.palette != nil
	w.mu.Unlock()

	if edited && inPalette {
		w.refreshPalette()
	}
	w.changed()
}

// view is an immutable copy of the workspace for drawing.
type view struct {
	focus    key.Target
	editor   string
	search   string
	status   string
	help     bool
	palette  *paletteView
	platform key.Platform
}

type paletteView struct {
	query    string
	selected int
	rows     []paletteRow
}

type paletteRow struct {
	label    string
	shortcut string
}

func (w *workspace) snapshot() view {
	w.mu.Lock()
	v := view{
		focus:    w.focus,
		editor:   string(w.editor),
		search:   string(w.search),
		status:   w.status,
		help:     w.help,
		platform: w.svc.Platform(),
	}
	var results []command.SearchResult
	if p := w.palette; p != nil {
		v.palette = &paletteView{query: string(p.query), selected: p.selected}
		results = slices.Clone(p.results)
	}
	w.mu.Unlock()

	if v.palette != nil {
		for _, r := range results {
			shortcut, _ := w.cmds.ShortcutDisplay(r.Command.ID)
			v.palette.rows = append(v.palette.rows, paletteRow{label: r.Command.Label(), shortcut: shortcut})
		}
	}
	return v
}
