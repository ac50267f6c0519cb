package kleene

import "strconv"

// Automata builds small automata for common languages.
type Automata struct {
	options []AutomatonOption
}

func NewAutomata(options ...AutomatonOption) *Automata {
	return &Automata{options: options}
}

// MakeEmpty
// Returns a new automaton with the empty language.
func (m *Automata) MakeEmpty() *Automaton {
	a := NewAutomaton(m.options...)
	s := a.CreateState("q0")
	_ = a.SetInitial(s)
	return a
}

// MakeEmptyString
// Returns a new automaton that accepts only the empty string.
func (m *Automata) MakeEmptyString() *Automaton {
	a := m.MakeEmpty()
	_ = a.SetAccept(a.Initial(), true)
	return a
}

// MakeString
// Returns a new automaton that accepts exactly s, one state per rune.
func (m *Automata) MakeString(s string) *Automaton {
	a := m.MakeEmpty()
	state := a.Initial()
	for _, r := range s {
		next := a.CreateState("q" + strconv.Itoa(a.GetNumStates()))
		_, _ = a.AddEdge(state, next, NewLiteral(string(r)))
		state = next
	}
	_ = a.SetAccept(state, true)
	return a
}

// MakeAnyOf
// Returns a new automaton that accepts any string over symbols, ε included.
func (m *Automata) MakeAnyOf(symbols ...string) *Automaton {
	a := m.MakeEmptyString()
	s := a.Initial()
	for _, sym := range symbols {
		_, _ = a.AddEdge(s, s, NewLiteral(sym))
	}
	return a
}
