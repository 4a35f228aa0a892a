package loader

import "errors"

// ErrMalformedLine is returned when a grammar-file line is neither blank,
// a rule of the form "L->α", nor one of the two leading alphabet-declaration
// lines (spec.md §6, "Any other shape is a fatal load error").
var ErrMalformedLine = errors.New("loader: malformed grammar line")

// ErrMissingAlphabetLines is returned when the file has fewer than two
// lines (the nonterminal and terminal declarations are mandatory).
var ErrMissingAlphabetLines = errors.New("loader: grammar file must declare nonterminals and terminals before any rule")
