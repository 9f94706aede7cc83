// Package keymap provides the ordered keybinding registry.
//
// The registry maps shortcuts to command ids. Entries are kept in
// registration order, and that order decides conflicts: when two commands
// are bound to the same key combination, the earlier registration wins.
//
// # Usage
//
//	r := keymap.NewRegistry()
//	if _, err := r.Register("file.save", "Cmd+S", ""); err != nil {
//	    // invalid shortcut; nothing was registered
//	}
//	r.Register("palette.open", "Cmd+Shift+P", "!inputFocus")
//
//	kb, ok := r.Lookup("file.save") // first binding, for display
//
//	for _, b := range r.Snapshot() {
//	    // match b.Keybinding, b.When against an event
//	}
//
// Registering a second shortcut for the same command appends another entry
// rather than replacing the first; Lookup keeps returning the first one.
package keymap
