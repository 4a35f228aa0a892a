// Package table builds LR parse tables (LR(0), SLR(1), and canonical/LALR
// LR(1)) from an automaton.Graph, sharing the action-merge lattice and
// query surface described in spec.md §4.3.
package table

import "fmt"

// Type enumerates the five action-cell values of spec.md §3.
type Type int

const (
	// Empty is the unpopulated cell value: Empty ⊕ x = x.
	Empty Type = iota
	// Shift consumes one input symbol and moves to Target.
	Shift
	// Reduce pops |β| states and reduces by production Prod.
	Reduce
	// Accept is Reduce(0) normalized: production 0's reduction signals
	// acceptance rather than an ordinary reduce.
	Accept
	// ConflictError is the terminal lattice element: a shift/reduce or
	// reduce/reduce conflict. Named ConflictError (not Error) to avoid
	// colliding with the builtin error type in this package's call sites.
	ConflictError
)

func (t Type) String() string {
	switch t {
	case Empty:
		return "empty"
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	case ConflictError:
		return "error"
	default:
		return "unknown"
	}
}

// Action is one parse-table cell: one of Shift, Accept, Reduce(production
// #), ConflictError, or Empty (spec.md §3).
type Action struct {
	Type   Type
	Target int // state to shift to, when Type == Shift (in an LR(0) table's one cell per state: the first shift merged in)
	Prod   int // production to reduce, when Type == Reduce
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.Target)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Prod)
	default:
		return a.Type.String()
	}
}

// normalizeAccept rewrites a reduction of production 0 into Accept:
// "production 0 reduction = acceptance" is baked into how a cell is
// represented, not layered on afterward, so every other rule in Merge can
// stay a simple structural comparison.
func normalizeAccept(a Action) Action {
	if a.Type == Reduce && a.Prod == 0 {
		return Action{Type: Accept}
	}
	return a
}

// Merge implements the action-merge lattice of spec.md §4.3:
//
//	Empty      ⊕ x             = x
//	Shift      ⊕ Shift         = Shift
//	Reduce(k)  ⊕ Reduce(k)     = Reduce(k)         -- idempotent
//	Reduce(0)  ⊕ Empty|Accept  = Accept             -- acceptance
//	anything else              = ConflictError
func Merge(a, b Action) Action {
	a, b = normalizeAccept(a), normalizeAccept(b)

	switch {
	case a.Type == Empty:
		return b
	case b.Type == Empty:
		return a
	case a.Type == Shift && b.Type == Shift:
		return a
	case a.Type == Reduce && b.Type == Reduce && a.Prod == b.Prod:
		return a
	case a.Type == Accept && b.Type == Accept:
		return a
	default:
		return Action{Type: ConflictError}
	}
}
