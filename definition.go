package kleene

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoAcceptStates = errors.New("automaton has no accept states")

// Transition is one labelled entry of a Definition. An empty Symbol is an ε
// transition; Tag makes the symbol opaque.
type Transition struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Symbol string `yaml:"symbol,omitempty"`
	Tag    bool   `yaml:"tag,omitempty"`
}

// Pattern returns the label of t.
func (t Transition) Pattern() *Pattern {
	switch {
	case t.Symbol == "":
		return NewEpsilon()
	case t.Tag:
		return NewTag(t.Symbol)
	}
	return NewLiteral(t.Symbol)
}

// Definition describes an automaton by state names.
type Definition struct {
	States      []string     `yaml:"states"`
	Initial     string       `yaml:"initial"`
	Accept      []string     `yaml:"accept"`
	Transitions []Transition `yaml:"transitions"`
}

// Build creates the automaton described by d. States keep their listed order,
// which is also the order Convert eliminates them in.
func Build(d *Definition, options ...AutomatonOption) (*Automaton, error) {
	if len(d.States) == 0 {
		return nil, ErrNoStates
	}
	if d.Initial == "" {
		return nil, ErrNoInitialState
	}
	if len(d.Accept) == 0 {
		return nil, ErrNoAcceptStates
	}

	a := NewAutomaton(append([]AutomatonOption{WithStateCapacity(len(d.States) + 2)}, options...)...)
	byName := make(map[string]int, len(d.States))
	for _, name := range d.States {
		if _, ok := byName[name]; ok {
			return nil, fmt.Errorf("duplicate state %q", name)
		}
		byName[name] = a.CreateState(name)
	}

	lookup := func(name string) (int, error) {
		s, ok := byName[name]
		if !ok {
			return -1, fmt.Errorf("%w: %q", ErrUnknownState, name)
		}
		return s, nil
	}

	initial, err := lookup(d.Initial)
	if err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	if err := a.SetInitial(initial); err != nil {
		return nil, err
	}

	for _, name := range d.Accept {
		s, err := lookup(name)
		if err != nil {
			return nil, fmt.Errorf("accept state: %w", err)
		}
		if err := a.SetAccept(s, true); err != nil {
			return nil, err
		}
	}

	for i, t := range d.Transitions {
		from, err := lookup(t.From)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		to, err := lookup(t.To)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		if _, err := a.AddEdge(from, to, t.Pattern()); err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
	}
	return a, nil
}

// ParseText reads the line format
//
//	q0 q1 q2        states
//	q0              initial state
//	q1 q2           accept states
//	q0 q1 a         transition from q0 to q1 on a
//	q1 q2           ε transition
//
// Blank lines and lines starting with '#' are skipped.
func ParseText(r io.Reader) (*Definition, error) {
	d := &Definition{}
	scanner := bufio.NewScanner(r)
	header := 0
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		switch header {
		case 0:
			d.States = fields
		case 1:
			if len(fields) != 1 {
				return nil, fmt.Errorf("line %d: expected one initial state, got %d", line, len(fields))
			}
			d.Initial = fields[0]
		case 2:
			d.Accept = fields
		default:
			t := Transition{}
			switch len(fields) {
			case 3:
				t.Symbol = fields[2]
				fallthrough
			case 2:
				t.From, t.To = fields[0], fields[1]
			default:
				return nil, fmt.Errorf("line %d: expected \"from to [symbol]\", got %q", line, text)
			}
			d.Transitions = append(d.Transitions, t)
		}
		header++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if header < 3 {
		return nil, fmt.Errorf("line %d: expected states, initial state and accept states", line)
	}
	return d, nil
}

// ParseYAML decodes a Definition from YAML.
func ParseYAML(data []byte) (*Definition, error) {
	d := &Definition{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("failed to parse automaton definition: %w", err)
	}
	return d, nil
}
