package automaton

import "github.com/dekarrin/lrforge/grammar"

// Variant is the small abstraction over item decoration and state
// equality that the three table-building graphs share (spec.md §9,
// "Polymorphism across variants"): a tagged-variant interface with three
// concrete instantiations rather than a class hierarchy.
type Variant interface {
	// Name identifies the variant for diagnostics.
	Name() string

	// HasLookahead reports whether this variant's items carry a
	// lookahead terminal.
	HasLookahead() bool

	// StartKernel returns the seed kernel for the start state:
	// { (0, 0, end-marker?) }.
	StartKernel(g *grammar.Grammar) []Item

	// Closure computes Closure(kernel) for this variant's item
	// decoration.
	Closure(g *grammar.Grammar, kernel []Item) []Item

	// KernelKey returns the canonical equality/lookup key used to decide
	// whether a newly-computed kernel is "already present" in the graph.
	KernelKey(kernel []Item) string

	// Merge reconciles an incoming kernel with an already-present one
	// that shares the same KernelKey. It returns the (possibly unioned)
	// kernel and whether it differs from existing. Plain LR(0) and
	// canonical LR(1) never merge (KernelKey already demands exact
	// equality), so their Merge is the identity. LALR(1) unions LR(1)
	// kernels that share an LR(0) erasure.
	Merge(existing, incoming []Item) (merged []Item, changed bool)
}

// LR0 is the lookahead-free variant used directly for LR(0) tables and, via
// its graph, for SLR(1) tables (spec.md §4.3: "the GOTO function is used to
// define the transitions in the LR(0) automaton... intuitively").
type LR0 struct{}

func (LR0) Name() string          { return "LR0" }
func (LR0) HasLookahead() bool    { return false }
func (LR0) StartKernel(g *grammar.Grammar) []Item {
	return []Item{{Prod: 0, Dot: 0, Lookahead: NoLookahead}}
}
func (LR0) Closure(g *grammar.Grammar, kernel []Item) []Item {
	return closeItems(g, kernel, false)
}
func (LR0) KernelKey(kernel []Item) string { return kernelKeyLR(kernel) }
func (LR0) Merge(existing, incoming []Item) ([]Item, bool) {
	return existing, false
}

// CLR1 is the canonical LR(1) variant: lookaheads are carried on every
// item and propagated exactly through closure, and graph states are
// distinguished by kernel+lookahead equality (no merging).
type CLR1 struct{}

func (CLR1) Name() string       { return "CLR1" }
func (CLR1) HasLookahead() bool { return true }
func (CLR1) StartKernel(g *grammar.Grammar) []Item {
	return []Item{{Prod: 0, Dot: 0, Lookahead: grammar.EndMarker}}
}
func (CLR1) Closure(g *grammar.Grammar, kernel []Item) []Item {
	return closeItems(g, kernel, true)
}
func (CLR1) KernelKey(kernel []Item) string { return kernelKeyLR(kernel) }
func (CLR1) Merge(existing, incoming []Item) ([]Item, bool) {
	return existing, false
}

// LALR1 behaves identically to CLR1 at closure time; it differs only in
// how the graph decides state identity (spec.md §4.2.c): two states merge
// whenever their LR(0) erasures match, unioning the LR(1) kernels and
// re-closing.
type LALR1 struct{}

func (LALR1) Name() string       { return "LALR1" }
func (LALR1) HasLookahead() bool { return true }
func (LALR1) StartKernel(g *grammar.Grammar) []Item {
	return []Item{{Prod: 0, Dot: 0, Lookahead: grammar.EndMarker}}
}
func (LALR1) Closure(g *grammar.Grammar, kernel []Item) []Item {
	return closeItems(g, kernel, true)
}
func (LALR1) KernelKey(kernel []Item) string { return kernelKeyLR0(kernel) }
func (LALR1) Merge(existing, incoming []Item) ([]Item, bool) {
	union := make([]Item, 0, len(existing)+len(incoming))
	union = append(union, existing...)
	union = append(union, incoming...)
	merged := dedupItems(union)
	return merged, len(merged) != len(dedupItems(existing))
}
