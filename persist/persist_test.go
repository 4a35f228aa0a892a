package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/driver"
	"github.com/dekarrin/lrforge/grammar"
	"github.com/dekarrin/lrforge/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trivialGrammar builds the spec.md §8 scenario 1 grammar: S -> a A, A -> a.
func trivialGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New([]grammar.Symbol{'S', 'A'}, []grammar.Symbol{'a'})
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'a', 'A'}))
	require.NoError(t, g.AddRule('A', []grammar.Symbol{'a'}))
	require.NoError(t, g.Finalize())
	return g
}

func TestFromTable_AnswersSameQueriesAsTable(t *testing.T) {
	g := trivialGrammar(t)
	gr := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, gr.Construct())
	tbl, err := table.BuildLR0(gr)
	require.NoError(t, err)

	blob := FromTable(tbl)
	assert.Equal(t, "LR0", blob.Variant)
	assert.Equal(t, tbl.Initial(), blob.Initial())
	assert.NotEmpty(t, blob.Actions)

	// blob must answer the same action/goto queries as the live table for
	// every state the live table actually knows about.
	for _, s := range gr.States() {
		for _, term := range append(g.Terminals(), grammar.EndMarker) {
			want := tbl.Action(s.ID, term)
			got := blob.Action(s.ID, term)
			assert.Equal(t, want, got, "state %d, lookahead %q", s.ID, term)
		}
		for _, nt := range g.NonTerminals() {
			wantDest, wantOK := tbl.Goto(s.ID, nt)
			gotDest, gotOK := blob.Goto(s.ID, nt)
			assert.Equal(t, wantOK, gotOK)
			if wantOK {
				assert.Equal(t, wantDest, gotDest)
			}
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	g := trivialGrammar(t)
	gr := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, gr.Construct())
	tbl, err := table.BuildLR0(gr)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "table.rezi")
	require.NoError(t, Save(path, FromTable(tbl)))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "LR0", loaded.Variant)
	assert.Equal(t, tbl.Initial(), loaded.Initial())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.rezi"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestBlob_SatisfiesDriverTable checks at compile time that a *Blob satisfies
// driver.Table, and drives "aa" through the source table it was built from.
func TestBlob_SatisfiesDriverTable(t *testing.T) {
	g := trivialGrammar(t)
	gr := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, gr.Construct())
	tbl, err := table.BuildLR0(gr)
	require.NoError(t, err)

	blob := FromTable(tbl)
	var _ driver.Table = blob // Blob must satisfy the driver's table surface.

	d := driver.New(tbl, gr, g, []grammar.Symbol{'a', 'a'})
	trace, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, trace)
}
