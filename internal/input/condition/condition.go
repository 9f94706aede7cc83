// Package condition provides context keys and "when" expressions that gate
// keybindings.
//
// A when-expression is a conjunction of context-key names, each optionally
// negated with a leading "!":
//
//	"editorFocus && !inputFocus"
//
// There is no OR and no grouping. Unknown names read as false, and
// evaluation never fails.
package condition

import "strings"

// Lookup reports the value of a context key. Absent keys are false.
type Lookup interface {
	Get(name string) bool
}

// Clause is a single, possibly negated, context-key reference.
type Clause struct {
	Name    string
	Negated bool
}

// Holds reports whether the clause is satisfied by ctx.
func (c Clause) Holds(ctx Lookup) bool {
	v := ctx.Get(c.Name)
	if c.Negated {
		return !v
	}
	return v
}

// String returns the clause in source form.
func (c Clause) String() string {
	if c.Negated {
		return "!" + c.Name
	}
	return c.Name
}

// Expr is a pre-parsed when-expression. The zero value always holds.
type Expr struct {
	Clauses []Clause
}

// Parse splits expr on "&&" into clauses. Whitespace around clauses is
// ignored. An empty or blank expression yields an Expr that always holds.
func Parse(expr string) Expr {
	if strings.TrimSpace(expr) == "" {
		return Expr{}
	}

	parts := strings.Split(expr, "&&")
	clauses := make([]Clause, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		c := Clause{Name: p}
		if strings.HasPrefix(p, "!") {
			c.Negated = true
			c.Name = strings.TrimSpace(p[1:])
		}
		clauses = append(clauses, c)
	}
	return Expr{Clauses: clauses}
}

// IsEmpty returns true if the expression has no clauses.
func (e Expr) IsEmpty() bool {
	return len(e.Clauses) == 0
}

// Eval reports whether every clause holds against ctx.
// A nil ctx behaves like an empty store.
func (e Expr) Eval(ctx Lookup) bool {
	if ctx == nil {
		ctx = emptyLookup{}
	}
	for _, c := range e.Clauses {
		if !c.Holds(ctx) {
			return false
		}
	}
	return true
}

// String returns the expression in canonical source form.
func (e Expr) String() string {
	parts := make([]string, len(e.Clauses))
	for i, c := range e.Clauses {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

type emptyLookup struct{}

func (emptyLookup) Get(string) bool { return false }
