package kleene

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var (
	ErrNoStates       = errors.New("automaton has no states")
	ErrNoInitialState = errors.New("automaton has no initial state")
	ErrUnknownState   = errors.New("unknown state")
	ErrNotGNFA        = errors.New("automaton is not a GNFA")
	ErrUnsolved       = errors.New("automaton has no start to accept edge")
)

// Vertex is a state of the automaton. Vertices are identified by their index
// in the automaton, never by name: two vertices may share a name.
type Vertex struct {
	id       int
	name     string
	outgoing map[int]*Edge
	incoming map[int]*Edge
}

func (v *Vertex) ID() int {
	return v.id
}

func (v *Vertex) Name() string {
	return v.name
}

// Edge is the single transition from one vertex to another.
type Edge struct {
	From    int
	To      int
	Pattern *Pattern
}

// transitionKey addresses the transition cache by ordered vertex pair.
type transitionKey struct {
	from, to int
}

func (k transitionKey) Hash() uint64 {
	return combine(mix(k.from), mix(k.to))
}

func (k transitionKey) Equals(other Hashable) bool {
	o, ok := other.(transitionKey)
	return ok && o == k
}

// Automaton is a directed graph of vertices labelled by patterns. States are
// integers created with CreateState. Every pattern stored on an edge is
// canonical: AddEdge runs it through Simplify.
//
// An Automaton is owned by a single caller; it is mutated in place by
// Generalize and EliminateState and must not be shared.
type Automaton struct {
	// Arena of every vertex ever created, indexed by state id. Removed
	// vertices keep their slot and are cleared from live.
	vertices []*Vertex
	live     *bitset.BitSet

	// Q in elimination order.
	order []int

	initial  int
	isAccept *bitset.BitSet

	transitions *HashMap[*Edge]

	// Sentinels, set by Generalize; -1 before.
	start, accept int

	logger *slog.Logger
}

type automatonOption struct {
	logger   *slog.Logger
	capacity int
}

type AutomatonOption func(*automatonOption)

// WithLogger sends elimination traces to logger at debug level.
func WithLogger(logger *slog.Logger) AutomatonOption {
	return func(o *automatonOption) {
		o.logger = logger
	}
}

// WithStateCapacity preallocates room for numStates states.
func WithStateCapacity(numStates int) AutomatonOption {
	return func(o *automatonOption) {
		o.capacity = numStates
	}
}

func NewAutomaton(options ...AutomatonOption) *Automaton {
	opts := &automatonOption{capacity: 2}
	for _, fn := range options {
		fn(opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Automaton{
		vertices:    make([]*Vertex, 0, opts.capacity),
		live:        bitset.New(uint(opts.capacity)),
		order:       make([]int, 0, opts.capacity),
		initial:     -1,
		isAccept:    bitset.New(uint(opts.capacity)),
		transitions: NewHashMap[*Edge](WithCapacity(opts.capacity * opts.capacity)),
		start:       -1,
		accept:      -1,
		logger:      opts.logger,
	}
}

// CreateState adds a vertex at the end of Q and returns its id.
func (a *Automaton) CreateState(name string) int {
	id := len(a.vertices)
	a.vertices = append(a.vertices, &Vertex{
		id:       id,
		name:     name,
		outgoing: make(map[int]*Edge),
		incoming: make(map[int]*Edge),
	})
	a.live.Set(uint(id))
	a.order = append(a.order, id)
	return id
}

func (a *Automaton) checkState(state int) error {
	if state < 0 || !a.live.Test(uint(state)) {
		return fmt.Errorf("%w: %d", ErrUnknownState, state)
	}
	return nil
}

// SetInitial marks state as q0.
func (a *Automaton) SetInitial(state int) error {
	if err := a.checkState(state); err != nil {
		return err
	}
	a.initial = state
	return nil
}

// Initial returns q0, or -1 when none was set.
func (a *Automaton) Initial() int {
	return a.initial
}

// SetAccept sets or clears state as an accept state.
func (a *Automaton) SetAccept(state int, accept bool) error {
	if err := a.checkState(state); err != nil {
		return err
	}
	a.isAccept.SetTo(uint(state), accept)
	return nil
}

// IsAccept returns true if this state is an accept state.
func (a *Automaton) IsAccept(state int) bool {
	return state >= 0 && a.isAccept.Test(uint(state))
}

// AcceptStates returns F in state id order.
func (a *Automaton) AcceptStates() []int {
	states := make([]int, 0, a.isAccept.Count())
	for i, ok := a.isAccept.NextSet(0); ok; i, ok = a.isAccept.NextSet(i + 1) {
		states = append(states, int(i))
	}
	return states
}

// States returns Q in elimination order.
func (a *Automaton) States() []int {
	return slices.Clone(a.order)
}

// GetNumStates returns |Q|.
func (a *Automaton) GetNumStates() int {
	return len(a.order)
}

// GetNumTransitions returns the number of edges, EmptySet placeholders included.
func (a *Automaton) GetNumTransitions() int {
	return a.transitions.Size()
}

// Vertex returns the vertex for state, or nil once it has been removed.
func (a *Automaton) Vertex(state int) *Vertex {
	if a.checkState(state) != nil {
		return nil
	}
	return a.vertices[state]
}

// Name returns the display name of state.
func (a *Automaton) Name(state int) string {
	if state < 0 || state >= len(a.vertices) {
		return fmt.Sprintf("#%d", state)
	}
	return a.vertices[state].name
}

// Edge looks up the transition from one state to another.
func (a *Automaton) Edge(from, to int) (*Edge, bool) {
	return a.transitions.Get(transitionKey{from: from, to: to})
}

// AddEdge adds a transition labelled p. A transition already present for the
// pair is merged with p by union. The stored label is canonical and the
// stored edge is returned.
func (a *Automaton) AddEdge(from, to int, p *Pattern) (*Edge, error) {
	if err := a.checkState(from); err != nil {
		return nil, err
	}
	if err := a.checkState(to); err != nil {
		return nil, err
	}

	if existing, ok := a.Edge(from, to); ok {
		p = NewOr(p, existing.Pattern)
	}

	edge := &Edge{From: from, To: to, Pattern: Simplify(p)}
	a.vertices[from].outgoing[to] = edge
	a.vertices[to].incoming[from] = edge
	a.transitions.Set(transitionKey{from: from, to: to}, edge)
	return edge, nil
}

// RemoveEdge deletes e from both adjacency maps and the transition cache.
// The edge must be present.
func (a *Automaton) RemoveEdge(e *Edge) {
	delete(a.vertices[e.From].outgoing, e.To)
	delete(a.vertices[e.To].incoming, e.From)
	a.transitions.Delete(transitionKey{from: e.From, to: e.To})
}

// replaceEdge drops the current (from, to) edge, if any, and stores p instead.
func (a *Automaton) replaceEdge(from, to int, p *Pattern) (*Edge, error) {
	if existing, ok := a.Edge(from, to); ok {
		a.RemoveEdge(existing)
	}
	return a.AddEdge(from, to, p)
}

// removeState deletes state, every edge touching it and its slot in Q.
func (a *Automaton) removeState(state int) {
	v := a.vertices[state]
	for _, e := range v.outgoing {
		a.RemoveEdge(e)
	}
	for _, e := range v.incoming {
		a.RemoveEdge(e)
	}
	a.live.Clear(uint(state))
	a.isAccept.Clear(uint(state))
	a.order = slices.DeleteFunc(a.order, func(s int) bool { return s == state })
}

// Transitions returns every edge ordered by the position of its endpoints in Q.
func (a *Automaton) Transitions() []*Edge {
	position := make(map[int]int, len(a.order))
	for i, s := range a.order {
		position[s] = i
	}

	edges := make([]*Edge, 0, a.transitions.Size())
	for _, e := range a.transitions.Iterator() {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y *Edge) int {
		if c := position[x.From] - position[y.From]; c != 0 {
			return c
		}
		return position[x.To] - position[y.To]
	})
	return edges
}
