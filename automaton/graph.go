package automaton

import (
	"fmt"

	"github.com/dekarrin/lrforge/grammar"
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// edge is a directed, symbol-labeled edge between two states of a Graph.
type edge struct {
	from  int
	to    int
	label grammar.Symbol
}

func stateComparator(a, b interface{}) int {
	return utils.IntComparator(a.(*State).ID, b.(*State).ID)
}

// Graph is a vector of states and, in parallel, a directed edge set
// labeled by grammar symbol: the goto relation of spec.md §3. States are
// kept in a gods treeset ordered by serial ID and edges in a gods
// arraylist (ground: npillmayer-gorgo/lr/tables.go's CFSM), which gives
// reproducible iteration order independent of Go's randomized map
// iteration — the determinism spec.md §4.2 requires of table
// construction.
type Graph struct {
	g       *grammar.Grammar
	variant Variant
	states  *treeset.Set
	edges   *arraylist.List
	byKey   map[string]*State
	start   int
	nextID  int
}

// NewGraph constructs an empty Graph for g using the given Variant. Call
// Construct to populate it; per spec.md §5, Construct must be called
// exactly once.
func NewGraph(g *grammar.Grammar, variant Variant) *Graph {
	return &Graph{
		g:       g,
		variant: variant,
		states:  treeset.NewWith(stateComparator),
		edges:   arraylist.New(),
		byKey:   map[string]*State{},
	}
}

// Construct performs the BFS described in spec.md §4.2: starting from the
// closure of the start kernel, repeatedly compute Goto for every symbol
// that can appear right of a dot, reusing states on kernel-equality (per
// the Variant's KernelKey) and, for LALR(1), merging kernels that share an
// LR(0) erasure and re-examining the merged state's outgoing edges.
func (gr *Graph) Construct() error {
	if gr.g == nil {
		return fmt.Errorf("automaton: no grammar set")
	}
	if !gr.g.Finalized() {
		return fmt.Errorf("automaton: grammar must be finalized before graph construction")
	}
	if gr.states.Size() > 0 {
		return fmt.Errorf("automaton: Construct called more than once")
	}

	startKernel := gr.variant.StartKernel(gr.g)
	startClosure := gr.variant.Closure(gr.g, startKernel)
	s0 := gr.newState(startKernel, startClosure, grammar.Epsilon, false)
	gr.byKey[gr.variant.KernelKey(startKernel)] = s0
	gr.start = s0.ID

	queued := map[int]bool{s0.ID: true}
	queue := []int{s0.ID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		queued[id] = false

		s := gr.byID(id)
		for _, sym := range symbolsAfterDot(gr.g, s.Closure) {
			rawKernel := advanceItems(gr.g, s.Closure, sym)
			if len(rawKernel) == 0 {
				continue
			}
			key := gr.variant.KernelKey(rawKernel)

			if existing, ok := gr.byKey[key]; ok {
				merged, changed := gr.variant.Merge(existing.Kernel, rawKernel)
				if changed {
					existing.Kernel = merged
					existing.Closure = gr.variant.Closure(gr.g, merged)
					if !queued[existing.ID] {
						queued[existing.ID] = true
						queue = append(queue, existing.ID)
					}
				}
				gr.addEdge(s.ID, existing.ID, sym)
				continue
			}

			closure := gr.variant.Closure(gr.g, rawKernel)
			ns := gr.newState(rawKernel, closure, sym, true)
			gr.byKey[key] = ns
			queued[ns.ID] = true
			queue = append(queue, ns.ID)
			gr.addEdge(s.ID, ns.ID, sym)
		}
	}

	return nil
}

func (gr *Graph) newState(kernel, closure []Item, from grammar.Symbol, hasFrom bool) *State {
	s := &State{
		ID:      gr.nextID,
		Kernel:  kernel,
		Closure: closure,
		From:    from,
		hasFrom: hasFrom,
	}
	gr.nextID++
	gr.states.Add(s)
	return s
}

func (gr *Graph) addEdge(from, to int, label grammar.Symbol) {
	// avoid duplicate edges accumulating across LALR re-examination passes.
	it := gr.edges.Iterator()
	for it.Next() {
		e := it.Value().(edge)
		if e.from == from && e.to == to && e.label == label {
			return
		}
	}
	gr.edges.Add(edge{from: from, to: to, label: label})
}

func (gr *Graph) byID(id int) *State {
	it := gr.states.Iterator()
	for it.Next() {
		s := it.Value().(*State)
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Start returns the ID of the graph's start state.
func (gr *Graph) Start() int {
	return gr.start
}

// Grammar returns the grammar this graph was built from.
func (gr *Graph) Grammar() *grammar.Grammar {
	return gr.g
}

// States returns every state, ordered by ID.
func (gr *Graph) States() []*State {
	out := make([]*State, 0, gr.states.Size())
	it := gr.states.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*State))
	}
	return out
}

// State returns the state with the given ID, or nil if none exists.
func (gr *Graph) State(id int) *State {
	return gr.byID(id)
}

// Next returns the ID of the state reached from state id on symbol sym,
// and true, or false if no such transition exists. This is the graph's
// goto relation, shared verbatim by all three table builders (spec.md
// §4.3: "Goto (in all three) is directly the graph's edge map restricted
// to nonterminal labels" — restriction to nonterminals happens in the
// table layer, not here).
func (gr *Graph) Next(id int, sym grammar.Symbol) (int, bool) {
	it := gr.edges.Iterator()
	for it.Next() {
		e := it.Value().(edge)
		if e.from == id && e.label == sym {
			return e.to, true
		}
	}
	return 0, false
}
