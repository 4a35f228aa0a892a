package loader

import (
	"strings"
	"testing"

	"github.com/dekarrin/lrforge/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TrivialGrammar(t *testing.T) {
	src := "S A\na\nS->aA\nA->a\n"

	g, err := Load(strings.NewReader(src))
	require.NoError(t, err)

	assert.True(t, g.Finalized())
	assert.Equal(t, 2, g.NumRules())
	assert.Equal(t, grammar.Symbol('S'), g.StartSymbol())
}

func TestLoad_SkipsBlankLines(t *testing.T) {
	src := "\nS A\n\na\n\nS->aA\n\nA->a\n\n"

	g, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumRules())
}

func TestLoad_EpsilonProduction(t *testing.T) {
	src := "S A B\na b\nS->AB\nA->a\nA->\nB->b\n"

	g, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, g.Follow('A').Has('b'))
}

func TestLoad_MissingArrow_IsMalformed(t *testing.T) {
	src := "S\na\nS a\n"

	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestLoad_UnknownSymbolOnRight_PropagatesGrammarError(t *testing.T) {
	src := "S\na\nS->z\n"

	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, grammar.ErrUnknownSymbol)
}

func TestLoad_TooFewHeaderLines_IsMissingAlphabet(t *testing.T) {
	src := "S\n"

	_, err := Load(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrMissingAlphabetLines)
}
