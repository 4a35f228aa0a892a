package table

import (
	"sort"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
)

// Conflict records a collision detected while merging two actions into the
// same cell: the colliding pair of actions, captured at the moment Merge first
// produced ConflictError for that cell (later merges into it are not recorded) (grounded on the teacher's parse/lraction.go
// makeLRConflictError, which records both colliding actions rather than
// just reporting "conflict").
type Conflict struct {
	State     int
	Lookahead grammar.Symbol
	First     Action
	Second    Action
}

type cellKey struct {
	state int
	sym   grammar.Symbol
}

// Table is the built parse table shared by all three variants: a flat
// (state, lookahead) -> Action map plus the goto relation inherited
// directly from the underlying automaton.Graph (spec.md §4.3: "Goto (in
// all three) is directly the graph's edge map restricted to nonterminal
// labels").
type Table struct {
	variant string
	g       *grammar.Grammar
	gr      *automaton.Graph
	// ignoreLookahead is true for LR(0): the action cell is keyed only by
	// state, not by the input symbol, so a single universal lookahead key
	// is used for every lookup and merge.
	ignoreLookahead bool

	action    map[cellKey]Action
	conflicts []Conflict
}

// Variant names the table's construction strategy ("LR0", "SLR1", "CLR1",
// or "LALR1").
func (t *Table) Variant() string { return t.variant }

// Initial returns the start state's ID.
func (t *Table) Initial() int { return t.gr.Start() }

// Action returns the action cell for (state, lookahead). An LR(0) table
// ignores lookahead entirely, per spec.md §4.3.
func (t *Table) Action(state int, lookahead grammar.Symbol) Action {
	key := lookahead
	if t.ignoreLookahead {
		key = automaton.NoLookahead
	}
	if act, ok := t.action[cellKey{state, key}]; ok {
		return act
	}
	return Action{Type: Empty}
}

// Goto returns the state reached from state on nonterminal sym, and true,
// or false if undefined. Only nonterminal symbols have goto entries; a
// terminal sym always reports false here even if the graph has an edge for
// it (that edge belongs to Action/Shift instead).
func (t *Table) Goto(state int, sym grammar.Symbol) (int, bool) {
	if !t.g.IsNonTerminal(sym) {
		return 0, false
	}
	return t.gr.Next(state, sym)
}

// Conflicts returns every shift/reduce or reduce/reduce collision detected
// during construction, in the order they were discovered.
func (t *Table) Conflicts() []Conflict {
	return t.conflicts
}

// IgnoresLookahead reports whether this table's action cells are keyed only
// by state (LR(0)) rather than by (state, lookahead).
func (t *Table) IgnoresLookahead() bool {
	return t.ignoreLookahead
}

// Cell is a single populated (state, lookahead) -> Action entry, exposed so
// that a caller outside this package (persist.FromTable) can walk the whole
// table without reaching into its private map.
type Cell struct {
	State     int
	Lookahead grammar.Symbol
	Action    Action
}

// Cells returns every populated action cell, ordered by state then
// lookahead, for serialization or inspection.
func (t *Table) Cells() []Cell {
	cells := make([]Cell, 0, len(t.action))
	for k, a := range t.action {
		cells = append(cells, Cell{State: k.state, Lookahead: k.sym, Action: a})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].State != cells[j].State {
			return cells[i].State < cells[j].State
		}
		return cells[i].Lookahead < cells[j].Lookahead
	})
	return cells
}

// Grammar returns the grammar the table was built from.
func (t *Table) Grammar() *grammar.Grammar {
	return t.g
}

// Graph returns the underlying item-set graph.
func (t *Table) Graph() *automaton.Graph {
	return t.gr
}

func (t *Table) mergeInto(state int, key grammar.Symbol, act Action) {
	ck := cellKey{state, key}
	old, existed := t.action[ck]
	merged := Merge(old, act)
	if merged.Type == ConflictError && existed && old.Type != Empty && old.Type != ConflictError {
		t.conflicts = append(t.conflicts, Conflict{State: state, Lookahead: key, First: old, Second: act})
	}
	t.action[ck] = merged
}

// reduceKeys returns the set of lookahead symbols under which a reduction
// by the given reduce-ready item should be entered, for a given variant:
// the single automaton.NoLookahead key for LR(0), FOLLOW(L) for SLR(1), or just the
// item's own carried lookahead for canonical LR(1)/LALR(1).
type buildStrategy struct {
	ignoreLookahead bool
	reduceKeys      func(g *grammar.Grammar, it automaton.Item) []grammar.Symbol
}

// build runs the shared table-construction walk of spec.md §4.3 over every
// state's item set: a shift cell for every item with a terminal right of
// the dot, and reduce cell(s) for every reduce-ready item, keyed according
// to strat. It is the single traversal shared by lr0.go, slr.go, and
// lr1.go (which also serves LALR(1), since LALR differs only in how its
// Graph was built, not in how its table is read off).
func build(variantName string, gr *automaton.Graph, strat buildStrategy) (*Table, error) {
	g := gr.Grammar()
	t := &Table{
		variant:         variantName,
		g:               g,
		gr:              gr,
		ignoreLookahead: strat.ignoreLookahead,
		action:          map[cellKey]Action{},
	}

	states := gr.States()
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })

	for _, s := range states {
		for _, it := range s.AllItems() {
			if sym, ok := it.PeekSymbol(g); ok {
				if !g.IsTerminal(sym) {
					continue
				}
				target, ok := gr.Next(s.ID, sym)
				if !ok {
					continue
				}
				shiftKey := sym
				if strat.ignoreLookahead {
					shiftKey = automaton.NoLookahead
				}
				t.mergeInto(s.ID, shiftKey, Action{Type: Shift, Target: target})
				continue
			}

			for _, la := range strat.reduceKeys(g, it) {
				t.mergeInto(s.ID, la, Action{Type: Reduce, Prod: it.Prod})
			}
		}
	}

	return t, nil
}
