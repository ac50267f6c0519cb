package kleene

// Simplify rewrites p into its canonical form. It works bottom-up: members
// are simplified before the rule for their parent fires. The result denotes
// the same language as p, and Simplify(Simplify(p)) equals Simplify(p).
func Simplify(p *Pattern) *Pattern {
	switch p.kind {
	case PATTERN_LITERAL, PATTERN_EMPTY_SET, PATTERN_EPSILON:
		return p
	case PATTERN_OR:
		return simplifyOr(p)
	case PATTERN_CONCAT:
		return simplifyConcat(p)
	case PATTERN_QUANTIFIED:
		return quantify(p.min, p.max, Simplify(p.exp))
	}
	panic("kleene: no simplification rule for pattern kind " + p.kind.String())
}

func simplifyOr(p *Pattern) *Pattern {
	seen := NewHashMap[struct{}](WithCapacity(len(p.patterns) * 2))
	members := make([]*Pattern, 0, len(p.patterns))
	hasEpsilon := false

	add := func(m *Pattern) {
		if seen.Has(m) {
			return
		}
		seen.Set(m, struct{}{})
		if m.kind == PATTERN_EPSILON {
			hasEpsilon = true
		}
		members = append(members, m)
	}

	for _, sub := range p.patterns {
		sub = Simplify(sub)
		switch sub.kind {
		case PATTERN_EMPTY_SET:
		case PATTERN_OR:
			for _, m := range sub.patterns {
				add(m)
			}
		default:
			add(sub)
		}
	}

	switch {
	case len(members) == 0:
		return emptySet
	case len(members) == 1:
		return members[0]
	case hasEpsilon:
		rest := make([]*Pattern, 0, len(members)-1)
		for _, m := range members {
			if m.kind != PATTERN_EPSILON {
				rest = append(rest, m)
			}
		}
		return Simplify(NewOptional(NewOr(rest...)))
	}
	return newPattern(PATTERN_OR, Symbol{}, members, nil, 0, 0)
}

func simplifyConcat(p *Pattern) *Pattern {
	members := make([]*Pattern, 0, len(p.patterns))
	for _, sub := range p.patterns {
		sub = Simplify(sub)
		switch sub.kind {
		case PATTERN_EPSILON:
			continue
		case PATTERN_EMPTY_SET:
			return emptySet
		}
		members = append(members, sub)
	}

	switch len(members) {
	case 0:
		return epsilon
	case 1:
		return members[0]
	}

	if folded, ok := foldLiterals(members); ok {
		return folded
	}

	flat := make([]*Pattern, 0, len(members))
	for _, m := range members {
		if m.kind == PATTERN_CONCAT {
			flat = append(flat, m.patterns...)
		} else {
			flat = append(flat, m)
		}
	}

	merged := make([]*Pattern, 0, len(flat))
	for _, m := range flat {
		for len(merged) > 0 {
			next, ok := mergeAdjacent(merged[len(merged)-1], m)
			if !ok {
				break
			}
			merged = merged[:len(merged)-1]
			m = next
		}
		merged = append(merged, m)
	}

	if len(merged) == 1 {
		return merged[0]
	}
	return newPattern(PATTERN_CONCAT, Symbol{}, merged, nil, 0, 0)
}

// foldLiterals joins a run made only of text literals into one literal.
// A run of one repeated literal is left to mergeAdjacent so that aa reads a{2}.
func foldLiterals(members []*Pattern) (*Pattern, bool) {
	same := true
	for _, m := range members {
		if m.kind != PATTERN_LITERAL || m.symbol.tag {
			return nil, false
		}
		if m.symbol != members[0].symbol {
			same = false
		}
	}
	if same {
		return nil, false
	}

	n := 0
	for _, m := range members {
		n += len(m.symbol.text)
	}
	b := make([]byte, 0, n)
	for _, m := range members {
		b = append(b, m.symbol.text...)
	}
	return NewLiteral(string(b)), true
}

// mergeAdjacent collapses prev followed by next when both repeat one body.
func mergeAdjacent(prev, next *Pattern) (*Pattern, bool) {
	prevQ := prev.kind == PATTERN_QUANTIFIED
	nextQ := next.kind == PATTERN_QUANTIFIED

	switch {
	case prevQ && nextQ && equal(prev.exp, next.exp):
		return quantify(prev.min+next.min, addBound(prev.max, next.max), prev.exp), true
	case prevQ && equal(prev.exp, next):
		return quantify(prev.min+1, addBound(prev.max, 1), next), true
	case nextQ && equal(next.exp, prev):
		return quantify(next.min+1, addBound(next.max, 1), prev), true
	case equal(prev, next):
		return quantify(2, 2, prev), true
	}
	return nil, false
}

// quantify applies the Quantified rule to an already canonical body.
func quantify(min, max int, exp *Pattern) *Pattern {
	switch {
	case exp.kind == PATTERN_EMPTY_SET:
		if min == 0 {
			return epsilon
		}
		return emptySet
	case exp.kind == PATTERN_EPSILON, max == 0:
		return epsilon
	case min == 1 && max == 1:
		return exp
	case exp.kind == PATTERN_QUANTIFIED && composable(min, max, exp.min, exp.max):
		return quantify(mulBound(min, exp.min), mulBound(max, exp.max), exp.exp)
	}
	return NewQuantified(min, max, exp)
}

// composable reports whether (x{l2,u2}){l,u} equals x{l*l2,u*u2}. That holds
// when the count ranges [k*l2, k*u2] for k in [l,u] leave no gaps.
func composable(l, u, l2, u2 int) bool {
	if l == u || l2 <= 1 {
		return true
	}
	if l == 0 {
		return false
	}
	if u2 == Infinity {
		return true
	}
	return l*(u2-l2) >= l2-1
}
