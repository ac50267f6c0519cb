package kleene

import (
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"
)

// Notation selects how a Pattern is written out.
type Notation int32

const (
	POSIX        = Notation(iota) // a|b, a*, a+, a?, a{2,3}
	FORMAL                        // a∪b, ε, Ø, a^2
	POSIX_LATEX                   // POSIX with LaTeX escaping
	FORMAL_LATEX                  // \cup, \varepsilon, \emptyset
)

var notationNames = map[Notation]string{
	POSIX:        "posix",
	FORMAL:       "formal",
	POSIX_LATEX:  "posix-latex",
	FORMAL_LATEX: "formal-latex",
}

// Notations lists every notation in declaration order.
func Notations() []Notation {
	return []Notation{POSIX, FORMAL, POSIX_LATEX, FORMAL_LATEX}
}

func (n Notation) String() string {
	if name, ok := notationNames[n]; ok {
		return name
	}
	return fmt.Sprintf("notation(%d)", int32(n))
}

// ParseNotation maps a name such as "posix" or "formal-latex" to its Notation.
func ParseNotation(name string) (Notation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for n, s := range notationNames {
		if s == name {
			return n, nil
		}
	}
	return POSIX, fmt.Errorf("unknown notation %q", name)
}

var currentNotation atomic.Int32

// SetNotation changes the notation used by Pattern.String.
func SetNotation(n Notation) {
	currentNotation.Store(int32(n))
}

func GetNotation() Notation {
	return Notation(currentNotation.Load())
}

func (p *Pattern) String() string {
	return p.Render(GetNotation())
}

// Render writes p in notation n.
func (p *Pattern) Render(n Notation) string {
	s, ok := symbolTables[n]
	if !ok {
		s = symbolTables[POSIX]
	}
	b := new(strings.Builder)
	s.write(b, p)
	return b.String()
}

type symbolTable struct {
	union    string
	emptySet string
	epsilon  string
	star     string
	plus     string
	optional string // empty: write x? as (x∪ε)
	exact    string
	between  string
	atLeast  string
	escape   func(string) string
}

var symbolTables = map[Notation]*symbolTable{
	POSIX: {
		union: "|", emptySet: "[]", epsilon: "()",
		star: "*", plus: "+", optional: "?",
		exact: "{%d}", between: "{%d,%d}", atLeast: "{%d,}",
	},
	FORMAL: {
		union: "∪", emptySet: "Ø", epsilon: "ε",
		star: "*", plus: "+",
		exact: "^%d", between: "^{%d,%d}", atLeast: "^{%d,}",
	},
	POSIX_LATEX: {
		union: `\mid `, emptySet: `[\,]`, epsilon: `(\,)`,
		star: "^{*}", plus: "^{+}", optional: "?",
		exact: `\{%d\}`, between: `\{%d,%d\}`, atLeast: `\{%d,\}`,
		escape: escapeLatex,
	},
	FORMAL_LATEX: {
		union: ` \cup `, emptySet: `{\emptyset}`, epsilon: `{\varepsilon}`,
		star: "^{*}", plus: "^{+}",
		exact: "^{%d}", between: "^{%d,%d}", atLeast: "^{%d,}",
		escape: escapeLatex,
	},
}

const (
	precUnion = iota + 1
	precConcat
	precPostfix
	precAtom
)

func precedence(p *Pattern) int {
	switch p.kind {
	case PATTERN_LITERAL:
		if utf8.RuneCountInString(p.symbol.text) == 1 || p.symbol.tag {
			return precAtom
		}
		return precConcat
	case PATTERN_EMPTY_SET, PATTERN_EPSILON:
		return precAtom
	case PATTERN_OR:
		switch len(p.patterns) {
		case 0:
			return precAtom
		case 1:
			return precedence(p.patterns[0])
		}
		return precUnion
	case PATTERN_CONCAT:
		switch len(p.patterns) {
		case 0:
			return precAtom
		case 1:
			return precedence(p.patterns[0])
		}
		return precConcat
	case PATTERN_QUANTIFIED:
		return precPostfix
	}
	panic("kleene: no rendering rule for pattern kind " + p.kind.String())
}

func (s *symbolTable) writeGrouped(b *strings.Builder, p *Pattern, wrap bool) {
	if wrap {
		b.WriteByte('(')
	}
	s.write(b, p)
	if wrap {
		b.WriteByte(')')
	}
}

func (s *symbolTable) write(b *strings.Builder, p *Pattern) {
	switch p.kind {
	case PATTERN_LITERAL:
		if s.escape != nil {
			b.WriteString(s.escape(p.symbol.text))
		} else {
			b.WriteString(p.symbol.text)
		}
	case PATTERN_EMPTY_SET:
		b.WriteString(s.emptySet)
	case PATTERN_EPSILON:
		b.WriteString(s.epsilon)
	case PATTERN_OR:
		if len(p.patterns) == 0 {
			b.WriteString(s.emptySet)
			return
		}
		for i, sub := range p.patterns {
			if i > 0 {
				b.WriteString(s.union)
			}
			// a nested union keeps its parentheses so the tree shape stays visible
			s.writeGrouped(b, sub, precedence(sub) <= precUnion && len(p.patterns) > 1)
		}
	case PATTERN_CONCAT:
		if len(p.patterns) == 0 {
			b.WriteString(s.epsilon)
			return
		}
		for _, sub := range p.patterns {
			s.writeGrouped(b, sub, precedence(sub) < precConcat)
		}
	case PATTERN_QUANTIFIED:
		s.writeQuantified(b, p)
	default:
		panic("kleene: no rendering rule for pattern kind " + p.kind.String())
	}
}

func (s *symbolTable) writeQuantified(b *strings.Builder, p *Pattern) {
	if p.min == 0 && p.max == 1 && s.optional == "" {
		b.WriteByte('(')
		s.writeGrouped(b, p.exp, precedence(p.exp) <= precUnion)
		b.WriteString(s.union)
		b.WriteString(s.epsilon)
		b.WriteByte(')')
		return
	}

	s.writeGrouped(b, p.exp, precedence(p.exp) < precAtom)
	switch {
	case p.min == 0 && p.max == Infinity:
		b.WriteString(s.star)
	case p.min == 1 && p.max == Infinity:
		b.WriteString(s.plus)
	case p.min == 0 && p.max == 1:
		b.WriteString(s.optional)
	case p.max == Infinity:
		fmt.Fprintf(b, s.atLeast, p.min)
	case p.min == p.max:
		fmt.Fprintf(b, s.exact, p.min)
	default:
		fmt.Fprintf(b, s.between, p.min, p.max)
	}
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`^`, `\^{}`,
	`~`, `\~{}`,
)

func escapeLatex(s string) string {
	return latexEscaper.Replace(s)
}
