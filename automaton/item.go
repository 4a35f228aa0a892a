// Package automaton builds the LR item-set graph (the "characteristic
// finite state machine") for a grammar: items, item sets (states), the
// closure and goto operations, and BFS/DFS graph construction for the
// LR(0), canonical LR(1), and LALR(1) variants described in spec.md §4.2.
package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lrforge/grammar"
)

// NoLookahead is the sentinel Lookahead value for items that carry none
// (LR(0) items). It is distinct from any real Symbol value callers would
// use, including EndMarker (a valid lookahead) and Epsilon (the zero Symbol).
const NoLookahead grammar.Symbol = -1

// Item is a dotted production: a pair (production index, dot position),
// optionally decorated with a lookahead terminal for LR(1)/LALR(1) items.
// An LR(0) item is the LR(1) item's erasure — i.e. Lookahead ==
// NoLookahead.
//
// Item is a small, flat, comparable value by design (spec.md §9): three
// integers, no pointers, no aliasing.
type Item struct {
	Prod      int
	Dot       int
	Lookahead grammar.Symbol
}

// HasLookahead reports whether this item carries a lookahead decoration.
func (it Item) HasLookahead() bool {
	return it.Lookahead != NoLookahead
}

// Erase returns the LR(0) erasure of it: the same dotted production with
// any lookahead stripped.
func (it Item) Erase() Item {
	return Item{Prod: it.Prod, Dot: it.Dot, Lookahead: NoLookahead}
}

// AtEnd reports whether the dot has reached the end of the production's
// right-hand side, i.e. this item is reduce-ready.
func (it Item) AtEnd(g *grammar.Grammar) bool {
	return it.Dot >= len(g.Rule(it.Prod).Right)
}

// PeekSymbol returns the symbol immediately to the right of the dot, and
// true, or the zero Symbol and false if the dot is at the end.
func (it Item) PeekSymbol(g *grammar.Grammar) (grammar.Symbol, bool) {
	rhs := g.Rule(it.Prod).Right
	if it.Dot >= len(rhs) {
		return grammar.Epsilon, false
	}
	return rhs[it.Dot], true
}

// Advance returns the item with its dot moved one position to the right.
func (it Item) Advance() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1, Lookahead: it.Lookahead}
}

// Rest returns the symbols of the production from the dot onward (the
// symbol right of the dot first), or nil if the dot is at the end.
func (it Item) Rest(g *grammar.Grammar) []grammar.Symbol {
	rhs := g.Rule(it.Prod).Right
	if it.Dot >= len(rhs) {
		return nil
	}
	return rhs[it.Dot:]
}

// String renders the item in "L -> α.β" form, with ", a" appended for
// items carrying a lookahead, matching the conventional dotted-production
// notation used throughout the parsing literature (and the teacher's own
// grammar.LR0Item/LR1Item.String()).
func (it Item) String(g *grammar.Grammar) string {
	r := g.Rule(it.Prod)
	s := fmt.Sprintf("%s ->", r.Left)
	for i, sym := range r.Right {
		if i == it.Dot {
			s += " ."
		}
		s += " " + sym.String()
	}
	if it.Dot == len(r.Right) {
		s += " ."
	}
	if it.HasLookahead() {
		s += fmt.Sprintf(", %s", it.Lookahead)
	}
	return s
}

// sortItems returns a new, canonically-ordered copy of items: sorted by
// production index, then dot position, then lookahead. This is the
// "deterministic ordering... so that state numbering is reproducible"
// spec.md §4.2 calls for.
func sortItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Prod != b.Prod {
			return a.Prod < b.Prod
		}
		if a.Dot != b.Dot {
			return a.Dot < b.Dot
		}
		return a.Lookahead < b.Lookahead
	})
	return out
}

// dedupItems removes exact duplicates after sorting.
func dedupItems(items []Item) []Item {
	sorted := sortItems(items)
	out := sorted[:0]
	for i, it := range sorted {
		if i == 0 || it != out[len(out)-1] {
			out = append(out, it)
		}
	}
	return out
}
