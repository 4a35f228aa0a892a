package table

import (
	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
)

// BuildSLR1 constructs an SLR(1) parse table from gr (which, like LR(0),
// must have been built with automaton.LR0{}: SLR adds no lookahead to the
// items themselves, only to how reductions are keyed). A reduce-ready item
// for production L -> α fires only under lookaheads in FOLLOW(L), which
// resolves some of the conflicts a plain LR(0) table would have (spec.md
// §4.3, "SLR(1): reduce only when lookahead ∈ FOLLOW(L)").
//
// Grounded on the teacher's parse/slr.go BuildSLRTable.
func BuildSLR1(gr *automaton.Graph) (*Table, error) {
	return build("SLR1", gr, buildStrategy{
		ignoreLookahead: false,
		reduceKeys: func(g *grammar.Grammar, it automaton.Item) []grammar.Symbol {
			left := g.Rule(it.Prod).Left
			return g.Follow(left).Elements()
		},
	})
}
