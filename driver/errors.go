package driver

import "errors"

// Parse-time error taxonomy (spec.md §7, "Parse-time"). These terminate a
// Driver in the Rejected state; nothing is retried.
var (
	// ErrUnexpectedSymbol is returned when action(s, σ) is Empty or
	// ConflictError: the table has no legal move for this state/lookahead.
	ErrUnexpectedSymbol = errors.New("driver: unexpected symbol")

	// ErrGotoMissing is returned when a Shift finds no graph edge from the
	// current state on the input symbol, or a Reduce finds no goto entry for
	// the production's left side.
	ErrGotoMissing = errors.New("driver: goto undefined for resolved state/symbol")

	// ErrStackUnderflow indicates table corruption: a reduction would pop
	// more states than are available above the stack floor. A correct
	// table never causes this; it is a fatal, not a recoverable, error.
	ErrStackUnderflow = errors.New("driver: stack underflow during reduction")

	// ErrReductionMismatch indicates table corruption of a different
	// shape: the states about to be popped for a reduction don't carry the
	// `from` symbols the production's right-hand side requires. This is
	// the check the original source's compare_stack skipped until after
	// popping; here the check happens in full before anything is popped.
	ErrReductionMismatch = errors.New("driver: reduction state mismatch")
)
