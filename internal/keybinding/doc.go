// Package keybinding resolves key presses into command invocations.
//
// A Service owns the keybinding registry, the context store and the handler
// table. Each key event is resolved against a snapshot of the registry in
// registration order; the first binding whose key combination matches, whose
// when-clause holds and whose command has a handler wins. The event's default
// action is suppressed and the handler runs.
//
// # Usage
//
//	svc := keybinding.New(keybinding.DefaultConfig(), logger)
//	defer svc.Close()
//
//	svc.RegisterHandler("file.save", func(ctx context.Context) error {
//	    return editor.Save(ctx)
//	})
//	svc.RegisterKeybinding("file.save", "Cmd+S", "")
//
//	dispose := svc.Setup(source)
//	defer dispose()
//
//	label, ok := svc.ShortcutDisplay("file.save") // "⌘S" on Mac, "Win+S" elsewhere
//
// # Handlers
//
// Synchronous handlers run on the dispatching goroutine. Async handlers are
// fire-and-forget: dispatch returns as soon as they are started. Errors and
// panics from either kind are logged and never reach the key source.
package keybinding
