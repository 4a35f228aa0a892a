// Package driver implements the shift/reduce stack automaton of spec.md
// §4.4-§4.5: it consumes a table.Table and an input symbol string,
// maintains a state stack, and emits a reduction trace or fails.
package driver

import (
	"fmt"

	"github.com/dekarrin/lrforge/automaton"
	"github.com/dekarrin/lrforge/grammar"
	"github.com/dekarrin/lrforge/table"
)

// Table is the query surface the driver needs from a built parse table
// (spec.md §6, "Table::action/Table::goto"). *table.Table satisfies this
// directly; persist.Blob (a deserialized, cached table) satisfies it too.
// New accepts only a *table.Table, so a Driver always runs against a live
// table together with its graph and grammar.
type Table interface {
	Initial() int
	Action(state int, lookahead grammar.Symbol) table.Action
	Goto(state int, sym grammar.Symbol) (int, bool)
}

// Status is the driver's three-state machine (spec.md §4.5).
type Status int

const (
	Running Status = iota
	Accepted
	Rejected
)

func (s Status) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Accepted:
		return "ACCEPTED"
	case Rejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Driver is the stack automaton: one per parse. It is not safe for
// concurrent use by multiple goroutines (spec.md §5, "spawn one driver per
// input"), though many Drivers may share the same *table.Table
// concurrently since the table is read-only after construction.
type Driver struct {
	t   Table
	gr  *automaton.Graph
	g   *grammar.Grammar
	in  []grammar.Symbol
	cur int

	stack  []int
	trace  []int
	status Status
	err    error

	// onStep is the optional step listener, set via SetTraceListener
	// (ground: ictiobus's lrParser.trace callback) — a plain func, not a logging framework,
	// since the core itself performs no I/O.
	onStep func(msg string)
}

// New builds a Driver over t for the given input string, with access to gr
// (for state `from`-symbol lookups during reduction) and g (for rule
// shape). The stack starts as [table.Initial()]; per spec.md §4.4 the
// caller is expected to pass a graph built for the same grammar/variant as
// t.
func New(t *table.Table, gr *automaton.Graph, g *grammar.Grammar, input []grammar.Symbol) *Driver {
	return &Driver{
		t:      t,
		gr:     gr,
		g:      g,
		in:     input,
		stack:  []int{t.Initial()},
		status: Running,
	}
}

// SetTraceListener installs fn to be called with a one-line description of
// every step taken. Pass nil to disable (the default).
func (d *Driver) SetTraceListener(fn func(string)) {
	d.onStep = fn
}

// Status reports the driver's current state-machine status.
func (d *Driver) Status() Status { return d.status }

// Trace returns the reduction trace accumulated so far (the production
// index of every reduction performed, in order, including the final 0 on
// acceptance).
func (d *Driver) Trace() []int {
	out := make([]int, len(d.trace))
	copy(out, d.trace)
	return out
}

// Err returns the error that caused rejection, or nil if the driver has
// not rejected.
func (d *Driver) Err() error { return d.err }

// currentLookahead returns Sym.Normal(current input char), or the
// end-marker once the cursor has consumed the whole input (spec.md §4.4
// step 1).
func (d *Driver) currentLookahead() grammar.Symbol {
	if d.cur >= len(d.in) {
		return grammar.EndMarker
	}
	return d.in[d.cur]
}

func (d *Driver) reject(err error) {
	d.status = Rejected
	d.err = err
	if d.onStep != nil {
		d.onStep(fmt.Sprintf("REJECTED: %v", err))
	}
}

// Run drives the automaton to completion: Step until Accepted or Rejected.
// It returns the final reduction trace and, on rejection, the error that
// stopped it (also available afterward via Err).
func (d *Driver) Run() ([]int, error) {
	for d.status == Running {
		d.Step()
	}
	return d.Trace(), d.err
}

// Step performs exactly one transition of spec.md §4.4. Calling Step after
// the driver has left Running is a no-op.
func (d *Driver) Step() {
	if d.status != Running {
		return
	}
	if len(d.stack) == 0 {
		d.reject(ErrStackUnderflow)
		return
	}

	s := d.stack[len(d.stack)-1]
	la := d.currentLookahead()
	act := d.t.Action(s, la)

	switch act.Type {
	case table.Shift:
		d.doShift(la)
	case table.Reduce:
		d.doReduce(act)
	case table.Accept:
		d.trace = append(d.trace, 0)
		d.status = Accepted
		if d.onStep != nil {
			d.onStep("ACCEPT")
		}
	default: // table.Empty, table.ConflictError
		d.reject(fmt.Errorf("%w: state %d, lookahead %s", ErrUnexpectedSymbol, s, la))
	}
}

// doShift pushes the state reached from the top state over la's graph
// edge. The destination is read from the graph rather than the action's
// Target, because an LR(0) table holds one Shift cell per state for every
// terminal.
func (d *Driver) doShift(la grammar.Symbol) {
	s := d.stack[len(d.stack)-1]
	if d.cur >= len(d.in) {
		d.reject(fmt.Errorf("%w: state %d would shift past end of input", ErrUnexpectedSymbol, s))
		return
	}
	target, ok := d.gr.Next(s, la)
	if !ok {
		d.reject(fmt.Errorf("%w: state %d, terminal %s", ErrGotoMissing, s, la))
		return
	}
	d.cur++
	d.stack = append(d.stack, target)
	if d.onStep != nil {
		d.onStep(fmt.Sprintf("shift %s -> state %d", la, target))
	}
}

// doReduce implements spec.md §4.4 step 3's Reduce(k) dispatch, fixing
// (not replicating) the source's known compare_stack bug: every popped
// state's `from` symbol is verified against the production's right-hand
// side in full before anything is popped (spec.md §9, "verify first, then
// pop").
func (d *Driver) doReduce(act table.Action) {
	rule := d.g.Rule(act.Prod)
	n := len(rule.Right)

	if len(d.stack) < n+1 {
		d.reject(ErrStackUnderflow)
		return
	}

	base := len(d.stack) - n
	for i := 0; i < n; i++ {
		st := d.gr.State(d.stack[base+i])
		if st == nil || !st.HasFrom() || st.From != rule.Right[i] {
			d.reject(fmt.Errorf("%w: production %d expects %q at stack position %d", ErrReductionMismatch, act.Prod, rule.Right[i], base+i))
			return
		}
	}

	d.stack = d.stack[:base]
	top := d.stack[len(d.stack)-1]

	dest, ok := d.t.Goto(top, rule.Left)
	if !ok {
		d.reject(fmt.Errorf("%w: state %d, nonterminal %s", ErrGotoMissing, top, rule.Left))
		return
	}

	d.stack = append(d.stack, dest)
	d.trace = append(d.trace, act.Prod)
	if d.onStep != nil {
		d.onStep(fmt.Sprintf("reduce %d (%s) -> state %d", act.Prod, rule.String(), dest))
	}
}
