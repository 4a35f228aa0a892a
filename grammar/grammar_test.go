package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_AddRule_Errors(t *testing.T) {
	assert := assert.New(t)

	g := New([]Symbol{'S'}, []Symbol{'a'})
	assert.ErrorIs(g.AddRule('X', []Symbol{'a'}), ErrLeftNotNonterminal)
	assert.ErrorIs(g.AddRule('S', []Symbol{'z'}), ErrUnknownSymbol)
	assert.NoError(g.AddRule('S', []Symbol{'a'}))
}

func TestGrammar_Finalize_IsIdempotentAndLocksMutation(t *testing.T) {
	require := require.New(t)
	g := New([]Symbol{'S'}, []Symbol{'a'})
	require.NoError(g.AddRule('S', []Symbol{'a'}))

	require.NoError(g.Finalize())
	require.NoError(g.Finalize()) // idempotent

	require.ErrorIs(g.AddRule('S', []Symbol{'a'}), ErrMutationAfterFinalize)
}

func TestGrammar_Validate_RejectsEmptyGrammar(t *testing.T) {
	g := New(nil, nil)
	assert.Error(t, g.Validate())
}

// epsilonGrammar builds the spec.md §8 scenario 5 grammar:
//
//	S -> A B
//	A -> a | ε
//	B -> b
func epsilonGrammar(t *testing.T) *Grammar {
	t.Helper()
	g := New([]Symbol{'S', 'A', 'B'}, []Symbol{'a', 'b'})
	require.NoError(t, g.AddRule('S', []Symbol{'A', 'B'}))
	require.NoError(t, g.AddRule('A', []Symbol{'a'}))
	require.NoError(t, g.AddRule('A', nil))
	require.NoError(t, g.AddRule('B', []Symbol{'b'}))
	require.NoError(t, g.Finalize())
	return g
}

func TestGrammar_Follow_PropagatesThroughEpsilon(t *testing.T) {
	g := epsilonGrammar(t)
	assert.True(t, g.Follow('A').Has('b'), "FOLLOW(A) must contain b: A can be skipped via its ε-production")
}

func TestGrammar_Follow_StartContainsEndMarker(t *testing.T) {
	g := epsilonGrammar(t)
	assert.True(t, g.Follow('S').Has(EndMarker))
}

func TestGrammar_First_NeverEscapesTerminalsOrEpsilon(t *testing.T) {
	g := epsilonGrammar(t)
	for i := range g.Rules() {
		for sym := range g.First(i) {
			if sym == Epsilon {
				continue
			}
			assert.True(t, g.IsTerminal(sym), "FIRST(%d) contains non-terminal, non-epsilon symbol %q", i, sym)
		}
	}
}

func TestGrammar_Follow_NeverEscapesTerminalsOrEndMarker(t *testing.T) {
	g := epsilonGrammar(t)
	for _, nt := range g.NonTerminals() {
		for sym := range g.Follow(nt) {
			if sym == EndMarker {
				continue
			}
			assert.True(t, g.IsTerminal(sym), "FOLLOW(%q) contains non-terminal, non-end-marker symbol %q", nt, sym)
		}
	}
}

func TestSymbolSet_Equal(t *testing.T) {
	a := NewSymbolSet('a', 'b')
	b := NewSymbolSet('b', 'a')
	assert.True(t, a.Equal(b))

	c := NewSymbolSet('a')
	assert.False(t, a.Equal(c))
}
