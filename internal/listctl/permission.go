package listctl

import "sort"

// Gate answers permission checks against the session's capability codes.
// It is immutable; login and logout build a new one.
type Gate struct {
	codes map[string]struct{}
}

func NewGate(codes []string) Gate {
	g := Gate{codes: make(map[string]struct{}, len(codes))}
	for _, code := range codes {
		if code != "" {
			g.codes[code] = struct{}{}
		}
	}
	return g
}

// Has reports whether code was granted.
func (g Gate) Has(code string) bool {
	_, ok := g.codes[code]
	return ok
}

// All reports whether every code was granted.
func (g Gate) All(codes ...string) bool {
	for _, code := range codes {
		if !g.Has(code) {
			return false
		}
	}
	return true
}

// Any reports whether at least one code was granted.
func (g Gate) Any(codes ...string) bool {
	for _, code := range codes {
		if g.Has(code) {
			return true
		}
	}
	return false
}

// Codes returns the granted codes sorted.
func (g Gate) Codes() []string {
	out := make([]string, 0, len(g.codes))
	for code := range g.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (g Gate) Len() int { return len(g.codes) }

// Action is a row or toolbar affordance. When is an extra row predicate;
// toolbar actions leave it nil.
type Action[T any] struct {
	ID         string
	Label      string
	Key        string
	Permission string
	Kind       MutationKind
	When       func(T) bool
}

// Allowed reports whether the action applies to row under gate.
func (a Action[T]) Allowed(gate Gate, row T) bool {
	if a.Permission != "" && !gate.Has(a.Permission) {
		return false
	}
	return a.When == nil || a.When(row)
}

// Visible filters actions down to those allowed for row.
func Visible[T any](gate Gate, actions []Action[T], row T) []Action[T] {
	out := make([]Action[T], 0, len(actions))
	for _, a := range actions {
		if a.Allowed(gate, row) {
			out = append(out, a)
		}
	}
	return out
}

// Permitted filters actions by permission only, for toolbars.
func Permitted[T any](gate Gate, actions []Action[T]) []Action[T] {
	out := make([]Action[T], 0, len(actions))
	for _, a := range actions {
		if a.Permission == "" || gate.Has(a.Permission) {
			out = append(out, a)
		}
	}
	return out
}
