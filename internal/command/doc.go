// Package command keeps the catalog of editor commands.
//
// A Command couples an identifier with its display metadata, an optional
// default shortcut and when-clause, and the handler that performs it.
// Registering a command installs its handler and keybinding on a Binder,
// normally a *keybinding.Service, so a command can be triggered from the
// keyboard or run directly through Execute.
//
// The registry also backs command palettes: All and ByCategory list commands
// in registration order, and Search ranks titles with fuzzy matching,
// boosting recently executed commands.
package command
