// Package loader implements the grammar text format of spec.md §6: the
// out-of-scope "grammar text loading/parsing from a file format"
// collaborator, named here explicitly since it has a concrete format to
// implement. Grounded on original_source/grammar.rs's add_rule validation
// shape (left-must-be-nonterminal, right-must-be-known-symbols) and the
// teacher's Preprocess (ictiobus.go)'s line-oriented bufio.Scanner style.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/lrforge/grammar"
)

// Load reads a grammar from r in the format of spec.md §6:
//
//	Line 1: space-separated single-character nonterminals.
//	Line 2: space-separated single-character terminals.
//	Subsequent non-blank lines: "L->α" (α may be empty, for an
//	ε-production). Blank lines are skipped throughout.
//
// The returned grammar has already been finalized (FIRST/FOLLOW
// populated); any structural error returned is one of grammar's sentinel
// errors (wrapped) or ErrMalformedLine/ErrMissingAlphabetLines.
func Load(r io.Reader) (*grammar.Grammar, error) {
	scanner := bufio.NewScanner(r)

	var nonTerms, terms []grammar.Symbol
	var ruleLines []string
	stage := 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch stage {
		case 0:
			nonTerms = parseSymbolList(line)
			stage++
		case 1:
			terms = parseSymbolList(line)
			stage++
		default:
			ruleLines = append(ruleLines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if stage < 2 {
		return nil, ErrMissingAlphabetLines
	}

	g := grammar.New(nonTerms, terms)
	for _, line := range ruleLines {
		left, right, err := parseRuleLine(line)
		if err != nil {
			return nil, err
		}
		if err := g.AddRule(left, right); err != nil {
			return nil, err
		}
	}

	if err := g.Finalize(); err != nil {
		return nil, err
	}
	return g, nil
}

// LoadFile opens path and Loads a grammar from it, closing the file
// afterward regardless of outcome.
func LoadFile(path string) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func parseSymbolList(line string) []grammar.Symbol {
	fields := strings.Fields(line)
	out := make([]grammar.Symbol, 0, len(fields))
	for _, f := range fields {
		r := []rune(f)
		if len(r) > 0 {
			out = append(out, grammar.Symbol(r[0]))
		}
	}
	return out
}

// parseRuleLine splits "L->α" into its left symbol and right-hand
// sequence. α is a bare run of single-character symbols with no
// separators (matching spec.md §6's "a string of terminal/nonterminal
// characters"); an empty α denotes an ε-production.
func parseRuleLine(line string) (grammar.Symbol, []grammar.Symbol, error) {
	left, right, ok := strings.Cut(line, "->")
	if !ok {
		return 0, nil, fmt.Errorf("%w: %q (missing \"->\")", ErrMalformedLine, line)
	}

	left = strings.TrimSpace(left)
	leftRunes := []rune(left)
	if len(leftRunes) != 1 {
		return 0, nil, fmt.Errorf("%w: %q (left side must be exactly one character)", ErrMalformedLine, line)
	}

	right = strings.TrimSpace(right)
	var rightSyms []grammar.Symbol
	for _, r := range right {
		rightSyms = append(rightSyms, grammar.Symbol(r))
	}

	return grammar.Symbol(leftRunes[0]), rightSyms, nil
}
