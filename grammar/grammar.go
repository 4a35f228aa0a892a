package grammar

import "fmt"

// Grammar is the tuple (nonterminals, terminals, productions, FIRST-by-
// production, FOLLOW-by-nonterminal) described in spec.md §3. It is
// mutable only up until Finalize is called; afterward FIRST and FOLLOW are
// populated and the grammar must not be changed.
//
// By convention, Rule 0 is the augmented start production (S' -> S): the
// caller is responsible for adding it first, exactly as the grammar text
// format in spec.md §6 does implicitly by listing the start rule first.
// Acceptance in the driver is the reduction of Rule 0.
type Grammar struct {
	nonTerms  SymbolSet
	terms     SymbolSet
	rules     []Rule
	first     []SymbolSet
	follow    map[Symbol]SymbolSet
	finalized bool
}

// New returns a Grammar with the given nonterminal and terminal alphabets.
// The two sets must be disjoint; this is checked by Validate (called from
// Finalize), not here, so that callers may build up a Grammar incrementally
// the way the text-format loader does.
func New(nonTerms, terms []Symbol) *Grammar {
	return &Grammar{
		nonTerms: NewSymbolSet(nonTerms...),
		terms:    NewSymbolSet(terms...),
	}
}

// AddRule appends a new production L -> right. It fails with
// ErrLeftNotNonterminal if left is not in the grammar's nonterminal set,
// with ErrUnknownSymbol if any symbol of right is in neither the terminal
// nor nonterminal set, and with ErrMutationAfterFinalize if Finalize has
// already been called. right may be empty to denote an ε-production.
func (g *Grammar) AddRule(left Symbol, right []Symbol) error {
	if g.finalized {
		return ErrMutationAfterFinalize
	}
	if !g.nonTerms.Has(left) {
		return fmt.Errorf("%w: %q is not a declared nonterminal", ErrLeftNotNonterminal, left)
	}
	for _, sym := range right {
		if !g.nonTerms.Has(sym) && !g.terms.Has(sym) {
			return fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
		}
	}

	rhs := make(Production, len(right))
	copy(rhs, right)
	g.rules = append(g.rules, Rule{Left: left, Right: rhs})
	return nil
}

// Validate checks the grammar's structural invariants: the terminal and
// nonterminal sets are disjoint, at least one rule exists, and every
// symbol referenced by a rule is a declared terminal or nonterminal.
func (g *Grammar) Validate() error {
	if len(g.nonTerms) == 0 {
		return fmt.Errorf("%w: no nonterminals declared", ErrMalformedRule)
	}
	if len(g.terms) == 0 {
		return fmt.Errorf("%w: no terminals declared", ErrMalformedRule)
	}
	for sym := range g.nonTerms {
		if g.terms.Has(sym) {
			return fmt.Errorf("%w: %q is both terminal and nonterminal", ErrMalformedRule, sym)
		}
	}
	if len(g.rules) == 0 {
		return fmt.Errorf("%w: no rules defined", ErrMalformedRule)
	}
	for _, r := range g.rules {
		if !g.nonTerms.Has(r.Left) {
			return fmt.Errorf("%w: left side %q is not a nonterminal", ErrLeftNotNonterminal, r.Left)
		}
		for _, sym := range r.Right {
			if !g.nonTerms.Has(sym) && !g.terms.Has(sym) {
				return fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
			}
		}
	}
	return nil
}

// Finalize populates FIRST-by-production and FOLLOW-by-nonterminal by
// running the bottom-up fixpoints specified in spec.md §4.1, then marks the
// grammar immutable. It is idempotent: once it has succeeded, calling it
// again is a no-op that returns nil.
func (g *Grammar) Finalize() error {
	if g.finalized {
		return nil
	}
	if err := g.Validate(); err != nil {
		return err
	}

	g.computeFirst()
	g.computeFollow()
	g.finalized = true
	return nil
}

// computeFirst implements spec.md §4.1 step (1)-(2): initialize FIRST(p) =
// ∅ for every production, then loop to a fixpoint reassigning FIRST(p) :=
// FIRST(right-hand-side of p).
func (g *Grammar) computeFirst() {
	g.first = make([]SymbolSet, len(g.rules))
	for i := range g.rules {
		g.first[i] = NewSymbolSet()
	}

	for changed := true; changed; {
		changed = false
		for i, r := range g.rules {
			next := g.firstOfSequence(r.Right)
			if !next.Equal(g.first[i]) {
				g.first[i] = next
				changed = true
			}
		}
	}
}

// firstOfSequence computes FIRST(α) for an arbitrary symbol sequence using
// the current (possibly still-converging) FIRST-by-production table. This
// is the recursive definition from spec.md §4.1 restated as a lookup over
// already-computed production FIRST sets, so that it can be driven by the
// fixpoint loop in computeFirst rather than recursing through the grammar
// itself.
func (g *Grammar) firstOfSequence(alpha []Symbol) SymbolSet {
	if len(alpha) == 0 {
		return NewSymbolSet(Epsilon)
	}

	head := alpha[0]
	if g.terms.Has(head) {
		return NewSymbolSet(head)
	}

	// head is a nonterminal: union FIRST of each of its productions.
	result := NewSymbolSet()
	for i, r := range g.rules {
		if r.Left != head {
			continue
		}
		result.AddAll(g.first[i])
	}

	if result.Has(Epsilon) {
		result.Remove(Epsilon)
		result.AddAll(g.firstOfSequence(alpha[1:]))
	}
	return result
}

// computeFollow implements spec.md §4.1 step (3)-(4).
func (g *Grammar) computeFollow() {
	g.follow = make(map[Symbol]SymbolSet, len(g.nonTerms))
	for nt := range g.nonTerms {
		g.follow[nt] = NewSymbolSet()
	}
	if len(g.rules) > 0 {
		g.follow[g.rules[0].Left].Add(EndMarker)
	}

	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			alpha := r.Right
			for i, sym := range alpha {
				if !g.nonTerms.Has(sym) {
					continue
				}
				beta := alpha[i+1:]
				firstBeta := g.firstOfSequence(beta)

				if firstBeta.Has(Epsilon) {
					firstBeta = firstBeta.Clone()
					firstBeta.Remove(Epsilon)
					if g.follow[sym].AddAll(g.follow[r.Left]) {
						changed = true
					}
				}
				if g.follow[sym].AddAll(firstBeta) {
					changed = true
				}
			}
		}
	}
}

// First returns FIRST(production #p), valid only after Finalize.
func (g *Grammar) First(p int) SymbolSet {
	if p < 0 || p >= len(g.first) {
		return NewSymbolSet()
	}
	return g.first[p]
}

// FirstOfSequence returns FIRST(α) for an arbitrary symbol sequence, valid
// only after Finalize. This is exposed for item closure (spec.md §4.2),
// which needs FIRST(α[d+1:]·lookahead) for canonical LR(1) items.
func (g *Grammar) FirstOfSequence(alpha []Symbol) SymbolSet {
	return g.firstOfSequence(alpha)
}

// Follow returns FOLLOW(nt), valid only after Finalize.
func (g *Grammar) Follow(nt Symbol) SymbolSet {
	if s, ok := g.follow[nt]; ok {
		return s
	}
	return NewSymbolSet()
}

// Rule returns the production numbered i.
func (g *Grammar) Rule(i int) Rule {
	return g.rules[i]
}

// Rules returns every production, in insertion (numbering) order.
func (g *Grammar) Rules() []Rule {
	return g.rules
}

// NumRules returns the number of productions in the grammar.
func (g *Grammar) NumRules() int {
	return len(g.rules)
}

// RulesFor returns the indices of every production whose left side is nt,
// in insertion order.
func (g *Grammar) RulesFor(nt Symbol) []int {
	var idxs []int
	for i, r := range g.rules {
		if r.Left == nt {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// StartSymbol returns the left-hand side of production 0, the augmented
// start nonterminal by convention (spec.md §3).
func (g *Grammar) StartSymbol() Symbol {
	if len(g.rules) == 0 {
		return Epsilon
	}
	return g.rules[0].Left
}

// IsTerminal reports whether sym is a declared terminal.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	return g.terms.Has(sym)
}

// IsNonTerminal reports whether sym is a declared nonterminal.
func (g *Grammar) IsNonTerminal(sym Symbol) bool {
	return g.nonTerms.Has(sym)
}

// Terminals returns the terminal alphabet in sorted order.
func (g *Grammar) Terminals() []Symbol {
	return g.terms.Elements()
}

// NonTerminals returns the nonterminal alphabet in sorted order.
func (g *Grammar) NonTerminals() []Symbol {
	return g.nonTerms.Elements()
}

// Finalized reports whether Finalize has been called successfully.
func (g *Grammar) Finalized() bool {
	return g.finalized
}
