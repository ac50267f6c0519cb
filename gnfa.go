package kleene

import (
	"errors"
	"fmt"
	"log/slog"
)

const (
	StartName  = "GNFA Start"
	AcceptName = "GNFA End"
)

// IsGeneralized reports whether Generalize has run.
func (a *Automaton) IsGeneralized() bool {
	return a.start != -1
}

// Start returns the start sentinel, or -1 before Generalize.
func (a *Automaton) Start() int {
	return a.start
}

// Accept returns the accept sentinel, or -1 before Generalize.
func (a *Automaton) Accept() int {
	return a.accept
}

// Generalize turns the automaton into a GNFA: a fresh start state with a
// single ε edge into q0, a fresh accept state reached by ε from every final
// state, and an EmptySet edge for every pair that had none. The sentinels are
// appended to Q so that elimination reaches them last.
func (a *Automaton) Generalize() error {
	if a.IsGeneralized() {
		return errors.New("automaton is already generalized")
	}
	if len(a.order) == 0 {
		return ErrNoStates
	}
	if a.checkState(a.initial) != nil {
		return ErrNoInitialState
	}

	finals := a.AcceptStates()
	start := a.CreateState(StartName)
	accept := a.CreateState(AcceptName)

	if _, err := a.AddEdge(start, a.initial, epsilon); err != nil {
		return err
	}
	for _, f := range finals {
		if _, err := a.AddEdge(f, accept, epsilon); err != nil {
			return err
		}
		a.isAccept.Clear(uint(f))
	}

	a.start, a.accept = start, accept
	a.initial = start
	a.isAccept.Set(uint(accept))

	for _, q1 := range a.order {
		if q1 == accept {
			continue
		}
		for _, q2 := range a.order {
			if q2 == start {
				continue
			}
			if _, ok := a.Edge(q1, q2); ok {
				continue
			}
			if _, err := a.AddEdge(q1, q2, emptySet); err != nil {
				return err
			}
		}
	}

	a.logger.Debug("generalized automaton",
		slog.Int("states", len(a.order)),
		slog.Int("transitions", a.transitions.Size()))
	return nil
}

type pendingEdge struct {
	from, to int
	pattern  *Pattern
}

// EliminateState removes the first non-sentinel state of Q and reroutes
// every path through it: qi -> qj becomes R1 R2* R3 | R4. All replacement
// labels are computed from the graph as it was before the round.
func (a *Automaton) EliminateState() error {
	if !a.IsGeneralized() {
		return fmt.Errorf("%w: generalize before eliminating states", ErrNotGNFA)
	}
	if len(a.order) <= 2 {
		return fmt.Errorf("%w: only the start and accept states remain", ErrNotGNFA)
	}

	rip := a.order[0]
	if rip == a.start || rip == a.accept {
		return fmt.Errorf("%w: refusing to eliminate sentinel %q", ErrNotGNFA, a.Name(rip))
	}

	a.logger.Debug("eliminating state", slog.String("state", a.Name(rip)), slog.Int("id", rip))

	pending := make([]pendingEdge, 0)
	for _, qi := range a.order {
		if qi == a.accept || qi == rip {
			continue
		}
		for _, qj := range a.order {
			if qj == a.start || qj == rip {
				continue
			}

			r1, ok := a.Edge(qi, rip)
			if !ok || r1.Pattern.Is(PATTERN_EMPTY_SET) {
				continue
			}
			r3, ok := a.Edge(rip, qj)
			if !ok || r3.Pattern.Is(PATTERN_EMPTY_SET) {
				continue
			}
			r2, ok := a.Edge(rip, rip)
			if !ok {
				return fmt.Errorf("%w: missing edge (%s, %s)", ErrNotGNFA, a.Name(rip), a.Name(rip))
			}
			r4, ok := a.Edge(qi, qj)
			if !ok {
				return fmt.Errorf("%w: missing edge (%s, %s)", ErrNotGNFA, a.Name(qi), a.Name(qj))
			}

			pending = append(pending, pendingEdge{
				from: qi,
				to:   qj,
				pattern: NewOr(
					NewConcat(r1.Pattern, NewStar(r2.Pattern), r3.Pattern),
					r4.Pattern,
				),
			})
		}
	}

	for _, p := range pending {
		e, err := a.replaceEdge(p.from, p.to, p.pattern)
		if err != nil {
			return err
		}
		a.logger.Debug("rerouted edge",
			slog.String("from", a.Name(e.From)),
			slog.String("to", a.Name(e.To)),
			slog.String("pattern", e.Pattern.String()))
	}

	a.removeState(rip)
	return nil
}

// Convert eliminates states until only the sentinels remain and returns the
// label between them.
func (a *Automaton) Convert() (*Pattern, error) {
	for len(a.order) > 2 {
		if err := a.EliminateState(); err != nil {
			return nil, err
		}
	}
	return a.Result()
}

// Result returns the start to accept label of a fully eliminated GNFA.
func (a *Automaton) Result() (*Pattern, error) {
	if !a.IsGeneralized() {
		return nil, fmt.Errorf("%w: automaton was never generalized", ErrUnsolved)
	}
	if len(a.order) > 2 {
		return nil, fmt.Errorf("%w: %d states left to eliminate", ErrUnsolved, len(a.order)-2)
	}
	e, ok := a.Edge(a.start, a.accept)
	if !ok {
		return nil, ErrUnsolved
	}
	return e.Pattern, nil
}

// Solve generalizes the automaton and eliminates every original state.
func (a *Automaton) Solve() (*Pattern, error) {
	if err := a.Generalize(); err != nil {
		return nil, err
	}
	return a.Convert()
}
