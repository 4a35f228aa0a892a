package grammar

import "errors"

// Construction-time error taxonomy, per spec.md §7.
var (
	// ErrUnknownSymbol is returned when a rule references a symbol that is
	// in neither the terminal nor the nonterminal set.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrLeftNotNonterminal is returned when AddRule is given a left-hand
	// side that was not declared a nonterminal.
	ErrLeftNotNonterminal = errors.New("left-hand side is not a nonterminal")

	// ErrMalformedRule is returned by Validate for a structurally invalid
	// grammar: an empty nonterminal or terminal set, a nonterminal/terminal
	// set that overlaps, or no rules at all.
	ErrMalformedRule = errors.New("malformed rule")

	// ErrMutationAfterFinalize is returned by AddRule once Finalize has
	// been called; the grammar is immutable from that point on.
	ErrMutationAfterFinalize = errors.New("grammar mutated after finalize")
)
