package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/ferrum-editor/ferrum/internal/command"
	"github.com/ferrum-editor/ferrum/internal/config"
)

// builtins returns the host's commands with their default shortcuts.
func (w *workspace) builtins() []*command.Command {
	return []*command.Command{
		{
			ID: "file.save", Title: "Save", Category: "File",
			Shortcut: "Cmd+S",
			Handler:  w.save,
		},
		{
			ID: "edit.clear", Title: "Clear Editor", Category: "Edit",
			Shortcut: "Cmd+K", When: "editorFocus && !inputFocus",
			Handler: w.clear,
		},
		{
			ID: "search.focus", Title: "Focus Search", Category: "View",
			Shortcut: "Cmd+F", When: "!paletteVisible",
			Handler: func(context.Context) error {
				w.setFocus(searchTarget)
				w.changed()
				return nil
			},
		},
		{
			ID: "editor.focus", Title: "Focus Editor", Category: "View",
			Shortcut: "Escape", When: "!paletteVisible",
			Handler: func(context.Context) error {
				w.setFocus(editorTarget)
				w.changed()
				return nil
			},
		},
		{
			ID: "palette.open", Title: "Show Command Palette", Category: "View",
			Shortcut: "Cmd+Shift+P", When: "!inputFocus",
			Handler: func(context.Context) error {
				w.openPalette()
				w.changed()
				return nil
			},
		},
		{
			ID: "palette.close", Title: "Close Command Palette", Category: "View",
			Shortcut: "Escape", When: "paletteVisible",
			Handler: func(context.Context) error {
				w.closePalette()
				w.changed()
				return nil
			},
		},
		{
			ID: "palette.next", Title: "Next Palette Item", Category: "View",
			Shortcut: "Down", When: "paletteVisible",
			Handler: func(context.Context) error {
				w.movePalette(1)
				w.changed()
				return nil
			},
		},
		{
			ID: "palette.prev", Title: "Previous Palette Item", Category: "View",
			Shortcut: "Up", When: "paletteVisible",
			Handler: func(context.Context) error {
				w.movePalette(-1)
				w.changed()
				return nil
			},
		},
		{
			ID: "palette.run", Title: "Run Palette Item", Category: "View",
			Shortcut: "Enter", When: "paletteVisible",
			Handler: func(ctx context.Context) error {
				defer w.changed()
				return w.runSelected(ctx)
			},
		},
		{
			ID: "help.toggle", Title: "Keyboard Shortcuts", Category: "Help",
			Shortcut: "F1",
			Handler: func(context.Context) error {
				w.mu.Lock()
				w.help = !w.help
				w.mu.Unlock()
				w.changed()
				return nil
			},
		},
		{
			ID: "metrics.report", Title: "Report Dispatch Metrics", Category: "Help",
			Shortcut: "Cmd+Shift+M", Async: true,
			Handler: w.reportMetrics,
		},
		{
			ID: "app.quit", Title: "Quit", Category: "App",
			Shortcut: "Cmd+Q",
			Handler: func(context.Context) error {
				w.quit()
				return nil
			},
		},
	}
}

// install registers the built-in commands, an F2 alternative for the
// palette and the user's configured keybindings.
func (w *workspace) install(user []config.KeybindingConfig) error {
	if err := w.cmds.RegisterAll(w.builtins()); err != nil {
		return err
	}
	_ = w.svc.RegisterKeybinding("palette.open", "F2", "!inputFocus")

	for _, kb := range user {
		if _, ok := w.cmds.Get(kb.Command); !ok {
			w.logger.Warn("keybinding for unknown command", zap.String("command", kb.Command))
			continue
		}
		// Invalid shortcuts are logged by the service and skipped.
		_ = w.svc.RegisterKeybinding(kb.Command, kb.Key, kb.When)
	}
	return nil
}

func (w *workspace) save(context.Context) error {
	w.mu.Lock()
	n := len(w.editor)
	w.mu.Unlock()

	w.setStatus(fmt.Sprintf("Saved %d characters", n))
	return nil
}

func (w *workspace) clear(context.Context) error {
	w.mu.Lock()
	w.editor = w.editor[:0]
	w.mu.Unlock()

	w.setStatus("Editor cleared")
	return nil
}

func (w *workspace) reportMetrics(ctx context.Context) error {
	m := w.svc.Metrics()
	if m == nil {
		w.setStatus("Metrics disabled (dispatch.metrics = false)")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var top []string
	for _, cm := range m.TopCommands(3) {
		top = append(top, fmt.Sprintf("%s×%d", cm.CommandID, cm.InvokeCount))
		w.logger.Info("command metrics",
			zap.String("command", cm.CommandID),
			zap.Uint64("invocations", cm.InvokeCount),
			zap.Uint64("errors", cm.ErrorCount),
			zap.Duration("max", cm.MaxDuration),
		)
	}
	w.setStatus(fmt.Sprintf("%d keys, %d matched; top: %s",
		m.TotalEvents(), m.TotalMatched(), strings.Join(top, ", ")))
	return nil
}

// charCount is used by the status line.
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}
