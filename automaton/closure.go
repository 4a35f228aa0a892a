package automaton

import "github.com/dekarrin/lrforge/grammar"

// closeItems implements the Closure(I) operation of spec.md §4.2 for both
// the lookahead-free (LR(0)) and lookahead-carrying (LR(1)/LALR(1)) item
// decorations, driven by a monotone-update loop over an explicit item set
// rather than recursion (spec.md §9).
func closeItems(g *grammar.Grammar, kernel []Item, withLookahead bool) []Item {
	seen := make(map[Item]struct{}, len(kernel)*2)
	var result []Item
	queue := make([]Item, 0, len(kernel))

	enqueue := func(it Item) {
		if _, ok := seen[it]; ok {
			return
		}
		seen[it] = struct{}{}
		result = append(result, it)
		queue = append(queue, it)
	}

	for _, it := range kernel {
		enqueue(it)
	}

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		sym, ok := it.PeekSymbol(g)
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}

		prods := g.RulesFor(sym)

		var lookaheads []grammar.Symbol
		if withLookahead {
			beta := it.Rest(g)[1:]
			lookaheads = firstOfBetaLookahead(g, beta, it.Lookahead).Elements()
		} else {
			lookaheads = []grammar.Symbol{NoLookahead}
		}

		for _, prodIdx := range prods {
			for _, la := range lookaheads {
				enqueue(Item{Prod: prodIdx, Dot: 0, Lookahead: la})
			}
		}
	}

	return dedupItems(result)
}

// firstOfBetaLookahead computes FIRST(β·a) for the canonical LR(1)
// lookahead rule of spec.md §4.2: "la′ ranges over FIRST(α[d+1..] · la)
// with ε removed". la is a terminal or the end-marker, never itself
// looked up as a grammar symbol (it need not be a declared terminal, since
// EndMarker isn't one), so it is handled as the literal trailing element
// rather than folded into grammar.Grammar.FirstOfSequence's own alphabet
// lookups.
func firstOfBetaLookahead(g *grammar.Grammar, beta []grammar.Symbol, la grammar.Symbol) grammar.SymbolSet {
	result := g.FirstOfSequence(beta).Clone()
	if result.Has(grammar.Epsilon) {
		result.Remove(grammar.Epsilon)
		result.Add(la)
	}
	return result
}

// advanceItems implements Goto(I, X) = { (p, d+1, la?) : (p, d, la?) ∈ I ∧
// α[d] = X }, returning the raw (unclosed) successor kernel.
func advanceItems(g *grammar.Grammar, closure []Item, sym grammar.Symbol) []Item {
	var out []Item
	for _, it := range closure {
		if s, ok := it.PeekSymbol(g); ok && s == sym {
			out = append(out, it.Advance())
		}
	}
	if len(out) == 0 {
		return nil
	}
	return dedupItems(out)
}

// symbolsAfterDot returns, in sorted order, every symbol that appears
// immediately right of a dot in closure — the set over which Goto is
// total for that state (spec.md §3).
func symbolsAfterDot(g *grammar.Grammar, closure []Item) []grammar.Symbol {
	set := grammar.NewSymbolSet()
	for _, it := range closure {
		if sym, ok := it.PeekSymbol(g); ok {
			set.Add(sym)
		}
	}
	return set.Elements()
}
