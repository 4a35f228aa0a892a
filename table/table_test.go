package table

import (
	"testing"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_Lattice(t *testing.T) {
	assert := assert.New(t)

	empty := Action{Type: Empty}
	shift3 := Action{Type: Shift, Target: 3}
	reduce2 := Action{Type: Reduce, Prod: 2}
	reduce0 := Action{Type: Reduce, Prod: 0}

	assert.Equal(shift3, Merge(empty, shift3))
	assert.Equal(shift3, Merge(shift3, empty))
	assert.Equal(shift3, Merge(shift3, shift3))
	assert.Equal(reduce2, Merge(reduce2, reduce2))
	assert.Equal(Action{Type: Accept}, Merge(empty, reduce0))
	assert.Equal(Action{Type: Accept}, Merge(reduce0, Action{Type: Accept}))
	assert.Equal(ConflictError, Merge(shift3, reduce2).Type)
	assert.Equal(ConflictError, Merge(reduce2, Action{Type: Reduce, Prod: 5}).Type)
}

// buildLR0Table is a small helper shared by the scenario tests below:
// it finalizes g, builds its LR(0) graph, and hands back both the graph
// and a freshly-built LR(0) table.
func buildLR0Table(t *testing.T, g *grammar.Grammar) (*automaton.Graph, *Table) {
	t.Helper()
	require.NoError(t, g.Finalize())
	gr := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, gr.Construct())
	tbl, err := BuildLR0(gr)
	require.NoError(t, err)
	return gr, tbl
}

// TestScenario1_Trivial is spec.md §8 scenario 1:
//
//	S -> a A
//	A -> a
//
// LR(0) table, input "aa" accepted with trace [1, 0].
func TestScenario1_Trivial(t *testing.T) {
	g := grammar.New([]grammar.Symbol{'S', 'A'}, []grammar.Symbol{'a'})
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'a', 'A'}))
	require.NoError(t, g.AddRule('A', []grammar.Symbol{'a'}))

	gr, tbl := buildLR0Table(t, g)
	assert.Empty(t, tbl.Conflicts())

	s0 := gr.Start()
	act := tbl.Action(s0, automaton.NoLookahead)
	assert.Equal(t, Shift, act.Type)

	s1, ok := gr.Next(s0, 'a')
	require.True(t, ok)
	act1 := tbl.Action(s1, automaton.NoLookahead)
	assert.Equal(t, Shift, act1.Type, "state after one 'a' holds S->a.A and A->.a, so it shifts on a")

	s2, ok := gr.Next(s1, 'a')
	require.True(t, ok)
	act2 := tbl.Action(s2, automaton.NoLookahead)
	assert.Equal(t, Reduce, act2.Type)
	assert.Equal(t, 1, act2.Prod) // reduce by A -> a (production 1)
}

// TestScenario2_ArithmeticWithEndMarker_LR0IsConflictFree is spec.md §8 scenario 2: an LR(0)
// grammar that is conflict-free.
//
//	S -> E $
//	E -> E + T
//	E -> T
//	T -> a
//	T -> ( E )
func arithmeticGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New(
		[]grammar.Symbol{'S', 'E', 'T'},
		[]grammar.Symbol{'(', ')', 'a', '$', '+'},
	)
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'E', '$'}))
	require.NoError(t, g.AddRule('E', []grammar.Symbol{'E', '+', 'T'}))
	require.NoError(t, g.AddRule('E', []grammar.Symbol{'T'}))
	require.NoError(t, g.AddRule('T', []grammar.Symbol{'a'}))
	require.NoError(t, g.AddRule('T', []grammar.Symbol{'(', 'E', ')'}))
	return g
}

func TestScenario2_ArithmeticWithEndMarker_LR0IsConflictFree(t *testing.T) {
	g := arithmeticGrammar(t)
	_, tbl := buildLR0Table(t, g)
	assert.Empty(t, tbl.Conflicts())
}

// TestScenario3_SLR1ResolvesLR0Conflict is spec.md §8 scenario 3: the
// classic expression grammar where the LR(0) automaton has a shift/reduce
// collision that SLR(1)'s FOLLOW-keyed reduction resolves.
//
//	S -> E
//	E -> E + T
//	E -> T
//	T -> T * F
//	T -> F
//	F -> a
//	F -> ( E )
func expressionGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New(
		[]grammar.Symbol{'S', 'E', 'T', 'F'},
		[]grammar.Symbol{'(', ')', 'a', '+', '*'},
	)
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'E'}))
	require.NoError(t, g.AddRule('E', []grammar.Symbol{'E', '+', 'T'}))
	require.NoError(t, g.AddRule('E', []grammar.Symbol{'T'}))
	require.NoError(t, g.AddRule('T', []grammar.Symbol{'T', '*', 'F'}))
	require.NoError(t, g.AddRule('T', []grammar.Symbol{'F'}))
	require.NoError(t, g.AddRule('F', []grammar.Symbol{'a'}))
	require.NoError(t, g.AddRule('F', []grammar.Symbol{'(', 'E', ')'}))
	return g
}

func TestScenario3_SLR1ResolvesLR0Conflict(t *testing.T) {
	g := expressionGrammar(t)
	require.NoError(t, g.Finalize())

	lr0Graph := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, lr0Graph.Construct())
	lr0Tbl, err := BuildLR0(lr0Graph)
	require.NoError(t, err)
	assert.NotEmpty(t, lr0Tbl.Conflicts(), "plain LR(0) must have at least one shift/reduce collision on this grammar")

	slrGraph := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, slrGraph.Construct())
	slrTbl, err := BuildSLR1(slrGraph)
	require.NoError(t, err)
	assert.Empty(t, slrTbl.Conflicts(), "SLR(1) must resolve the conflict via FOLLOW-keyed reduction")
}

// TestScenario4_ConflictDetection is spec.md §8 scenario 4: S -> S S | a is
// ambiguous and SLR(1) must report at least one Error cell.
//
// S is not the sole production of its own nonterminal here, so per this
// package's augmentation convention (grammar.go: "production 0 is supplied
// by the caller") the grammar must be pre-augmented with a fresh wrapper
// nonterminal Z -> S as production 0 — otherwise S -> S S would be
// production 0, and every reduction by it would be read as acceptance.
func TestScenario4_ConflictDetection(t *testing.T) {
	g := grammar.New([]grammar.Symbol{'Z', 'S'}, []grammar.Symbol{'a'})
	require.NoError(t, g.AddRule('Z', []grammar.Symbol{'S'}))
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'S', 'S'}))
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'a'}))
	require.NoError(t, g.Finalize())

	gr := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, gr.Construct())
	tbl, err := BuildSLR1(gr)
	require.NoError(t, err)
	assert.NotEmpty(t, tbl.Conflicts())
}

// TestScenario6_CanonicalLR1SucceedsWhereSLR1Fails is spec.md §8 scenario
// 6, the textbook "LR(1) but not SLR(1)" grammar:
//
//	S -> L = R | R
//	L -> * R | id
//	R -> L
//
// S has two alternatives, so (as in scenario 4 above) the grammar needs an
// explicit wrapper production Z -> S as production 0.
func lr1OnlyGrammar(t *testing.T) *grammar.Grammar {
	t.Helper()
	g := grammar.New(
		[]grammar.Symbol{'Z', 'S', 'L', 'R'},
		[]grammar.Symbol{'=', '*', 'i'}, // 'i' stands in for "id" (single-char alphabet)
	)
	require.NoError(t, g.AddRule('Z', []grammar.Symbol{'S'}))
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'L', '=', 'R'}))
	require.NoError(t, g.AddRule('S', []grammar.Symbol{'R'}))
	require.NoError(t, g.AddRule('L', []grammar.Symbol{'*', 'R'}))
	require.NoError(t, g.AddRule('L', []grammar.Symbol{'i'}))
	require.NoError(t, g.AddRule('R', []grammar.Symbol{'L'}))
	return g
}

func TestScenario6_CanonicalLR1SucceedsWhereSLR1Fails(t *testing.T) {
	g := lr1OnlyGrammar(t)
	require.NoError(t, g.Finalize())

	slrGraph := automaton.NewGraph(g, automaton.LR0{})
	require.NoError(t, slrGraph.Construct())
	slrTbl, err := BuildSLR1(slrGraph)
	require.NoError(t, err)
	assert.NotEmpty(t, slrTbl.Conflicts(), "SLR(1) is known to conflict on this grammar")

	clrGraph := automaton.NewGraph(g, automaton.CLR1{})
	require.NoError(t, clrGraph.Construct())
	clrTbl, err := BuildCLR1(clrGraph)
	require.NoError(t, err)
	assert.Empty(t, clrTbl.Conflicts(), "canonical LR(1) must be conflict-free on this grammar")
}

func TestBuildLALR1_SharesTableShapeWithCLR1(t *testing.T) {
	g := lr1OnlyGrammar(t)
	require.NoError(t, g.Finalize())

	gr := automaton.NewGraph(g, automaton.LALR1{})
	require.NoError(t, gr.Construct())
	tbl, err := BuildLALR1(gr)
	require.NoError(t, err)
	assert.Equal(t, "LALR1", tbl.Variant())
	assert.Empty(t, tbl.Conflicts())
}

func TestTable_String_ContainsActionAndGotoColumns(t *testing.T) {
	g := arithmeticGrammar(t)
	_, tbl := buildLR0Table(t, g)

	out := tbl.String()
	assert.Contains(t, out, "A:")
	assert.Contains(t, out, "G:")
}
