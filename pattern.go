package kleene

import (
	"slices"
)

type Kind int

const (
	PATTERN_LITERAL    = Kind(iota) // A single symbol
	PATTERN_EMPTY_SET               // The language containing no strings
	PATTERN_EPSILON                 // The language containing only the empty string
	PATTERN_OR                      // The union of the sub patterns
	PATTERN_CONCAT                  // The sub patterns in sequence
	PATTERN_QUANTIFIED              // A sub pattern repeated between min and max times
)

func (k Kind) String() string {
	switch k {
	case PATTERN_LITERAL:
		return "literal"
	case PATTERN_EMPTY_SET:
		return "empty-set"
	case PATTERN_EPSILON:
		return "epsilon"
	case PATTERN_OR:
		return "or"
	case PATTERN_CONCAT:
		return "concat"
	case PATTERN_QUANTIFIED:
		return "quantified"
	}
	return "unknown"
}

// Infinity is the upper bound of an unbounded repetition.
const Infinity = -1

// Symbol is the payload of a literal: either text, or an opaque tag that is
// only ever compared by name and never folded into neighbouring text.
type Symbol struct {
	text string
	tag  bool
}

func TextSymbol(text string) Symbol {
	return Symbol{text: text}
}

func TagSymbol(name string) Symbol {
	return Symbol{text: name, tag: true}
}

func (s Symbol) Text() string {
	return s.text
}

func (s Symbol) IsTag() bool {
	return s.tag
}

func (s Symbol) String() string {
	return s.text
}

// Pattern is an immutable regular expression tree. Patterns are compared by
// structure (Equals), never by pointer.
type Pattern struct {
	kind     Kind
	symbol   Symbol
	patterns []*Pattern // PATTERN_OR, PATTERN_CONCAT
	exp      *Pattern   // PATTERN_QUANTIFIED
	min, max int
	hash     uint64
}

var (
	emptySet = newPattern(PATTERN_EMPTY_SET, Symbol{}, nil, nil, 0, 0)
	epsilon  = newPattern(PATTERN_EPSILON, Symbol{}, nil, nil, 0, 0)
)

func newPattern(kind Kind, symbol Symbol, patterns []*Pattern, exp *Pattern, min, max int) *Pattern {
	p := &Pattern{
		kind:     kind,
		symbol:   symbol,
		patterns: patterns,
		exp:      exp,
		min:      min,
		max:      max,
	}
	p.hash = p.computeHash()
	return p
}

func (p *Pattern) computeHash() uint64 {
	h := mix(int(p.kind))
	switch p.kind {
	case PATTERN_LITERAL:
		h = combine(h, mixString(p.symbol.text))
		if p.symbol.tag {
			h = combine(h, 1)
		}
	case PATTERN_OR, PATTERN_CONCAT:
		h = combine(h, uint64(len(p.patterns)))
		for _, sub := range p.patterns {
			h = combine(h, sub.hash)
		}
	case PATTERN_QUANTIFIED:
		h = combine(h, mix(p.min))
		h = combine(h, mix(p.max))
		h = combine(h, p.exp.hash)
	}
	return h
}

// NewLiteral returns a literal over text.
func NewLiteral(text string) *Pattern {
	return newPattern(PATTERN_LITERAL, TextSymbol(text), nil, nil, 0, 0)
}

// NewTag returns a literal over an opaque symbol.
func NewTag(name string) *Pattern {
	return newPattern(PATTERN_LITERAL, TagSymbol(name), nil, nil, 0, 0)
}

func NewSymbol(symbol Symbol) *Pattern {
	return newPattern(PATTERN_LITERAL, symbol, nil, nil, 0, 0)
}

func NewEmptySet() *Pattern {
	return emptySet
}

func NewEpsilon() *Pattern {
	return epsilon
}

// NewOr returns the union of patterns. None of them may be nil.
func NewOr(patterns ...*Pattern) *Pattern {
	return newPattern(PATTERN_OR, Symbol{}, slices.Clone(patterns), nil, 0, 0)
}

// NewConcat returns the concatenation of patterns. None of them may be nil.
func NewConcat(patterns ...*Pattern) *Pattern {
	return newPattern(PATTERN_CONCAT, Symbol{}, slices.Clone(patterns), nil, 0, 0)
}

// NewQuantified repeats exp between min and max times; max may be Infinity.
// Callers keep 0 <= min <= max.
func NewQuantified(min, max int, exp *Pattern) *Pattern {
	return newPattern(PATTERN_QUANTIFIED, Symbol{}, nil, exp, min, max)
}

func NewStar(exp *Pattern) *Pattern {
	return NewQuantified(0, Infinity, exp)
}

func NewPlus(exp *Pattern) *Pattern {
	return NewQuantified(1, Infinity, exp)
}

func NewOptional(exp *Pattern) *Pattern {
	return NewQuantified(0, 1, exp)
}

func NewRepeat(n int, exp *Pattern) *Pattern {
	return NewQuantified(n, n, exp)
}

func (p *Pattern) Kind() Kind {
	return p.kind
}

func (p *Pattern) Symbol() Symbol {
	return p.symbol
}

// Patterns returns a copy of the members of an Or or Concat.
func (p *Pattern) Patterns() []*Pattern {
	return slices.Clone(p.patterns)
}

func (p *Pattern) Min() int {
	return p.min
}

func (p *Pattern) Max() int {
	return p.max
}

// Body returns the repeated pattern of a Quantified, nil otherwise.
func (p *Pattern) Body() *Pattern {
	return p.exp
}

func (p *Pattern) Is(kind Kind) bool {
	return p.kind == kind
}

func (p *Pattern) Hash() uint64 {
	return p.hash
}

// Equals reports deep structural equality.
func (p *Pattern) Equals(other Hashable) bool {
	o, ok := other.(*Pattern)
	if !ok {
		return false
	}
	return equal(p, o)
}

func equal(a, b *Pattern) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.hash != b.hash || a.kind != b.kind {
		return false
	}

	switch a.kind {
	case PATTERN_LITERAL:
		return a.symbol == b.symbol
	case PATTERN_EMPTY_SET, PATTERN_EPSILON:
		return true
	case PATTERN_OR, PATTERN_CONCAT:
		return slices.EqualFunc(a.patterns, b.patterns, equal)
	case PATTERN_QUANTIFIED:
		return a.min == b.min && a.max == b.max && equal(a.exp, b.exp)
	}
	panic("kleene: unknown pattern kind " + a.kind.String())
}

func addBound(a, b int) int {
	if a == Infinity || b == Infinity {
		return Infinity
	}
	return a + b
}

// mulBound multiplies repetition bounds. Zero wins over Infinity: repeating
// anything zero times is the empty string.
func mulBound(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a == Infinity || b == Infinity {
		return Infinity
	}
	return a * b
}
