package table

import (
	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
)

// BuildLR0 constructs an LR(0) parse table from gr (which must have been
// built with automaton.LR0{}): a reduce-ready item fires its reduction
// unconditionally, regardless of the next input symbol, so every action
// cell for a state collapses to the single automaton.NoLookahead key
// (spec.md §4.3, "LR(0): reduce regardless of lookahead").
//
// Grounded on the teacher's parse/lr.go BuildLRTable, adapted to this
// repo's shared build walk.
func BuildLR0(gr *automaton.Graph) (*Table, error) {
	return build("LR0", gr, buildStrategy{
		ignoreLookahead: true,
		reduceKeys: func(g *grammar.Grammar, it automaton.Item) []grammar.Symbol {
			return []grammar.Symbol{automaton.NoLookahead}
		},
	})
}
