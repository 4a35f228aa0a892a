// Package persist caches a built table.Table to disk using REZI binary
// encoding and reads it back. The CLI (cmd/lrgen) only writes this cache; it
// rebuilds the automaton and table on every invocation. This is additive to the core
// spec (spec.md §5: "a single table may back many driver instances... the
// table is read-only") — tables are immutable once built, which is exactly
// the shape a cache wants.
//
// Grounded on the teacher's server/dao/sqlite/sqlite.go
// convertToDB_GameStatePtr/convertFromDB_GameStatePtr: rezi.EncBinary(v)
// for encoding, rezi.DecBinary(data, v) for decoding, with the same
// decoded-byte-count sanity check the teacher performs.
package persist

import (
	"fmt"
	"os"
	"sort"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
	"github.com/dekarrin/lrforge/table"
	"github.com/dekarrin/rezi"
)

// ActionEntry is one flattened (state, lookahead) -> action row. Blob uses
// flat slices of these plain structs rather than maps; MarshalBinary and
// UnmarshalBinary encode them field by field.
type ActionEntry struct {
	State     int
	Lookahead int32
	Type      int
	Target    int
	Prod      int
}

// GotoEntry is one flattened (state, nonterminal) -> destination row.
type GotoEntry struct {
	State  int
	Symbol int32
	Dest   int
}

// Blob is the on-disk, rebuilt-grammar-free representation of a built
// table.Table: the Initial/Action/Goto queries and nothing else. A *Blob
// satisfies driver.Table, but driver.New takes a *table.Table together with
// its graph and grammar, so a Blob on its own does not drive a parse.
type Blob struct {
	Variant         string
	Start           int
	IgnoreLookahead bool
	Actions         []ActionEntry
	Gotos           []GotoEntry
}

// FromTable flattens a built table.Table into a Blob ready for Save.
func FromTable(t *table.Table) *Blob {
	b := &Blob{
		Variant:         t.Variant(),
		Start:           t.Initial(),
		IgnoreLookahead: t.IgnoresLookahead(),
	}

	for _, c := range t.Cells() {
		b.Actions = append(b.Actions, ActionEntry{
			State:     c.State,
			Lookahead: int32(c.Lookahead),
			Type:      int(c.Action.Type),
			Target:    c.Action.Target,
			Prod:      c.Action.Prod,
		})
	}

	g := t.Graph()
	gm := t.Grammar()
	for _, s := range g.States() {
		for _, nt := range gm.NonTerminals() {
			if dest, ok := t.Goto(s.ID, nt); ok {
				b.Gotos = append(b.Gotos, GotoEntry{State: s.ID, Symbol: int32(nt), Dest: dest})
			}
		}
	}

	sort.Slice(b.Actions, func(i, j int) bool {
		if b.Actions[i].State != b.Actions[j].State {
			return b.Actions[i].State < b.Actions[j].State
		}
		return b.Actions[i].Lookahead < b.Actions[j].Lookahead
	})
	sort.Slice(b.Gotos, func(i, j int) bool {
		if b.Gotos[i].State != b.Gotos[j].State {
			return b.Gotos[i].State < b.Gotos[j].State
		}
		return b.Gotos[i].Symbol < b.Gotos[j].Symbol
	})

	return b
}

// Initial returns the start state's ID. Part of driver.Table.
func (b *Blob) Initial() int { return b.Start }

// Action returns the cached action for (state, lookahead). Part of
// driver.Table.
func (b *Blob) Action(state int, lookahead grammar.Symbol) table.Action {
	key := int32(lookahead)
	if b.IgnoreLookahead {
		key = int32(automaton.NoLookahead)
	}
	for _, e := range b.Actions {
		if e.State == state && e.Lookahead == key {
			return table.Action{Type: table.Type(e.Type), Target: e.Target, Prod: e.Prod}
		}
	}
	return table.Action{Type: table.Empty}
}

// Goto returns the cached goto destination for (state, nonterminal). Part
// of driver.Table.
func (b *Blob) Goto(state int, sym grammar.Symbol) (int, bool) {
	for _, e := range b.Gotos {
		if e.State == state && e.Symbol == int32(sym) {
			return e.Dest, true
		}
	}
	return 0, false
}

// MarshalBinary REZI-encodes b field by field, in declaration order, so
// that rezi.EncBinary can use *Blob as its argument.
func (b *Blob) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(b.Variant)...)
	data = append(data, rezi.EncInt(b.Start)...)
	data = append(data, rezi.EncBool(b.IgnoreLookahead)...)

	data = append(data, rezi.EncInt(len(b.Actions))...)
	for _, a := range b.Actions {
		data = append(data, rezi.EncInt(a.State)...)
		data = append(data, rezi.EncInt(int(a.Lookahead))...)
		data = append(data, rezi.EncInt(a.Type)...)
		data = append(data, rezi.EncInt(a.Target)...)
		data = append(data, rezi.EncInt(a.Prod)...)
	}

	data = append(data, rezi.EncInt(len(b.Gotos))...)
	for _, g := range b.Gotos {
		data = append(data, rezi.EncInt(g.State)...)
		data = append(data, rezi.EncInt(int(g.Symbol))...)
		data = append(data, rezi.EncInt(g.Dest)...)
	}

	return data, nil
}

// UnmarshalBinary REZI-decodes data into b, undoing MarshalBinary.
func (b *Blob) UnmarshalBinary(data []byte) error {
	var pos int

	variant, n, err := rezi.DecString(data[pos:])
	if err != nil {
		return fmt.Errorf("Variant: %w", err)
	}
	pos += n

	start, n, err := rezi.DecInt(data[pos:])
	if err != nil {
		return fmt.Errorf("Start: %w", err)
	}
	pos += n

	ignoreLookahead, n, err := rezi.DecBool(data[pos:])
	if err != nil {
		return fmt.Errorf("IgnoreLookahead: %w", err)
	}
	pos += n

	actionCount, n, err := rezi.DecInt(data[pos:])
	if err != nil {
		return fmt.Errorf("Actions count: %w", err)
	}
	pos += n

	actions := make([]ActionEntry, actionCount)
	for i := 0; i < actionCount; i++ {
		state, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Actions[%d].State: %w", i, err)
		}
		pos += n

		lookahead, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Actions[%d].Lookahead: %w", i, err)
		}
		pos += n

		typ, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Actions[%d].Type: %w", i, err)
		}
		pos += n

		target, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Actions[%d].Target: %w", i, err)
		}
		pos += n

		prod, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Actions[%d].Prod: %w", i, err)
		}
		pos += n

		actions[i] = ActionEntry{
			State:     state,
			Lookahead: int32(lookahead),
			Type:      typ,
			Target:    target,
			Prod:      prod,
		}
	}

	gotoCount, n, err := rezi.DecInt(data[pos:])
	if err != nil {
		return fmt.Errorf("Gotos count: %w", err)
	}
	pos += n

	gotos := make([]GotoEntry, gotoCount)
	for i := 0; i < gotoCount; i++ {
		state, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Gotos[%d].State: %w", i, err)
		}
		pos += n

		symbol, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Gotos[%d].Symbol: %w", i, err)
		}
		pos += n

		dest, n, err := rezi.DecInt(data[pos:])
		if err != nil {
			return fmt.Errorf("Gotos[%d].Dest: %w", i, err)
		}
		pos += n

		gotos[i] = GotoEntry{State: state, Symbol: int32(symbol), Dest: dest}
	}

	b.Variant = variant
	b.Start = start
	b.IgnoreLookahead = ignoreLookahead
	b.Actions = actions
	b.Gotos = gotos

	return nil
}

// Save REZI-encodes b and writes it to path.
func Save(path string, b *Blob) error {
	data := rezi.EncBinary(b)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Load reads path and REZI-decodes it into a Blob.
func Load(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	b := &Blob{}
	n, err := rezi.DecBinary(data, b)
	if err != nil {
		return nil, fmt.Errorf("persist: REZI decode: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("persist: decoded byte count mismatch; only consumed %d/%d bytes", n, len(data))
	}

	return b, nil
}
