package table

import (
	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
)

// buildLR1 constructs a parse table from gr (which must have been built
// with automaton.CLR1{} or automaton.LALR1{}: both decorate items with a
// carried lookahead, differing only in how their graphs merge states). A
// reduce-ready item fires only under the single lookahead it carries — the
// lookahead computed during closure already accounts for everything that
// can legally follow that particular derivation, so no separate FOLLOW
// lookup is needed (spec.md §4.3, "Canonical LR(1)/LALR(1): reduce only
// under the item's own carried lookahead").
//
// BuildCLR1 and BuildLALR1 both call this function because the
// table-construction walk only reads it.Lookahead; it has no notion of how
// the graph arrived at that item.
//
// Grounded on the teacher's parse/clr1.go and parse/lalr.go, which share
// an identical table-filling loop for the same reason.
func buildLR1(variantName string, gr *automaton.Graph) (*Table, error) {
	return build(variantName, gr, buildStrategy{
		ignoreLookahead: false,
		reduceKeys: func(g *grammar.Grammar, it automaton.Item) []grammar.Symbol {
			return []grammar.Symbol{it.Lookahead}
		},
	})
}

// BuildCLR1 constructs a canonical LR(1) parse table from gr, which must
// have been built with automaton.CLR1{}.
func BuildCLR1(gr *automaton.Graph) (*Table, error) {
	return buildLR1("CLR1", gr)
}

// BuildLALR1 constructs an LALR(1) parse table from gr, which must have
// been built with automaton.LALR1{}.
func BuildLALR1(gr *automaton.Graph) (*Table, error) {
	return buildLR1("LALR1", gr)
}
