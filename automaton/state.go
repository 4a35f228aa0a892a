package automaton

import (
	"github.com/cnf/structhash"
	"github.com/dekarrin/lrforge/grammar"
)

// State is an item set: two disjoint sub-sets, the kernel (the items that
// seeded the state) and the closure (everything derivable from the kernel
// by repeatedly expanding nonterminals right of the dot). Per spec.md §3,
// state equality is kernel-equality; the closure is recomputed, never
// compared.
//
// From records the symbol on the incoming edge, for display/traceability
// only; it plays no role in equality.
type State struct {
	ID      int
	Kernel  []Item
	Closure []Item
	From    grammar.Symbol
	hasFrom bool
}

// HasFrom reports whether From is meaningful (false only for the start
// state, which has no incoming edge).
func (s *State) HasFrom() bool {
	return s.hasFrom
}

// AllItems returns the full item set for the state: kernel and closure
// combined and deduplicated. Most consumers (table construction) want this
// view rather than the kernel/closure split.
func (s *State) AllItems() []Item {
	combined := make([]Item, 0, len(s.Kernel)+len(s.Closure))
	combined = append(combined, s.Kernel...)
	combined = append(combined, s.Closure...)
	return dedupItems(combined)
}

// kernelKeyLR builds the canonical equality key for a kernel where
// lookahead participates in equality (plain LR(0) and canonical LR(1)):
// items are canonically sorted first so that two kernels built from
// different insertion orders still hash identically, then hashed with
// structhash (grounded on npillmayer-gorgo/lr/earley's use of the same
// library to build canonical item-set keys).
func kernelKeyLR(kernel []Item) string {
	sorted := sortItems(kernel)
	h, err := structhash.Hash(sorted, 1)
	if err != nil {
		// structhash only fails on values it cannot reflect over; Item is a
		// flat struct of comparable fields, so this cannot happen.
		panic("automaton: unhashable kernel: " + err.Error())
	}
	return h
}

// kernelKeyLR0 builds the LALR grouping key: the LR(0) erasure of the
// kernel. Two LR(1) states are LALR-equivalent iff this key matches
// (spec.md §3, "LALR equivalence").
func kernelKeyLR0(kernel []Item) string {
	erased := make([]Item, len(kernel))
	for i, it := range kernel {
		erased[i] = it.Erase()
	}
	sorted := sortItems(erased)
	h, err := structhash.Hash(sorted, 1)
	if err != nil {
		panic("automaton: unhashable kernel: " + err.Error())
	}
	return h
}
