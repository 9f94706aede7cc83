package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrInvalidShortcut = errors.New("invalid shortcut")
	ErrEmptyShortcut   = fmt.Errorf("%w: empty shortcut", ErrInvalidShortcut)
	ErrNoKey           = fmt.Errorf("%w: no key, only modifiers", ErrInvalidShortcut)
)

// ParseShortcut parses a shortcut string such as "Cmd+Shift+P" into a Keybinding.
//
// Tokens are separated by "+" and compared case-insensitively. Modifier
// synonyms may appear in any order. Every other token is a key; when more
// than one key token appears the last one wins. A shortcut that names only
// modifiers is rejected with ErrNoKey.
func ParseShortcut(shortcut string) (Keybinding, error) {
	if strings.TrimSpace(shortcut) == "" {
		return Keybinding{}, ErrEmptyShortcut
	}

	var kb Keybinding
	found := false

	for _, raw := range strings.Split(shortcut, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" && raw != "" {
			// Untrimmed whitespace, i.e. the space bar itself.
			token = KeySpace
		}

		if mod, ok := modifierNameMap[token]; ok {
			kb.Modifiers = kb.Modifiers.with(mod)
			continue
		}

		kb.Key = NormalizeKey(token)
		found = true
	}

	if !found || kb.Key == "" {
		return Keybinding{}, fmt.Errorf("%w: %q", ErrNoKey, shortcut)
	}
	return kb, nil
}

// MustParseShortcut parses a shortcut and panics on error.
// Use only for known-valid shortcuts in initialization code.
func MustParseShortcut(shortcut string) Keybinding {
	kb, err := ParseShortcut(shortcut)
	if err != nil {
		panic("invalid shortcut: " + shortcut + ": " + err.Error())
	}
	return kb
}
