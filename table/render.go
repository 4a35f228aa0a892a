package table

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lrforge/grammar"
	"github.com/dekarrin/rosed"
)

// String renders the table for human inspection (spec.md §6, "Table
// display format": one row per state, header listing the symbol
// alphabet — exact layout is illustrative, not normative). Grounded
// directly on the teacher's parse/slr.go String(): build a [][]string of
// "A:<sym>" action columns then "G:<nt>" goto columns, and hand it to
// rosed's InsertTableOpts for alignment.
func (t *Table) String() string {
	g := t.g
	terms := g.Terminals()
	nonterms := g.NonTerminals()

	allTerms := make([]grammar.Symbol, len(terms))
	copy(allTerms, terms)
	allTerms = append(allTerms, grammar.EndMarker)

	data := [][]string{}

	headers := []string{"state", "|"}
	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", term.String()))
	}
	headers = append(headers, "|")
	for _, nt := range nonterms {
		headers = append(headers, fmt.Sprintf("G:%s", nt.String()))
	}
	data = append(data, headers)

	states := t.gr.States()
	sort.Slice(states, func(i, j int) bool { return states[i].ID < states[j].ID })

	for _, s := range states {
		row := []string{fmt.Sprintf("%d", s.ID), "|"}

		for _, term := range allTerms {
			row = append(row, cellString(t.Action(s.ID, term)))
		}

		row = append(row, "|")

		for _, nt := range nonterms {
			cell := ""
			if dest, ok := t.Goto(s.ID, nt); ok {
				cell = fmt.Sprintf("%d", dest)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func cellString(a Action) string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("s%d", a.Target)
	case Reduce:
		return fmt.Sprintf("r%d", a.Prod)
	case Accept:
		return "acc"
	case ConflictError:
		return "ERR"
	default:
		return ""
	}
}
