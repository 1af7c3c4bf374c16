// Subsumption engine. Implies decides, from structural information alone,
// whether every value admitted by one constraint descriptor is admitted by
// another. A descriptor is either a bare class tag, denoting the union of
// admissible sets over every valid instantiation of that constraint kind,
// or one concrete constraint instance.
package valguard

// constraintFamily groups kinds that share one decision rule.
type constraintFamily int

const (
	// famSimple kinds take no parameters; class tag and instance denote
	// the same domain.
	famSimple constraintFamily = iota
	famInterval
	famLiteral
)

func family(k ConstraintKind) constraintFamily {
	switch k {
	case KindInterval, KindBoundedInt, KindBoundedFloat:
		return famInterval
	case KindLiteralStr:
		return famLiteral
	default:
		return famSimple
	}
}

// Descriptor is one side of a subsumption comparison: a constraint kind
// with, optionally, the concrete instance carrying its parameters.
type Descriptor struct {
	kind ConstraintKind
	inst Constraint
}

// Class returns the bare class-tag descriptor for a constraint kind. For a
// parameterized kind this denotes the union over every valid
// parameterization; for the simple kinds it is equivalent to an instance.
func Class(k ConstraintKind) Descriptor {
	return Descriptor{kind: k}
}

// Instance returns the descriptor for one concrete constraint. A nil
// constraint degenerates to Class(KindAny).
func Instance(c Constraint) Descriptor {
	if c == nil {
		return Class(KindAny)
	}
	return Descriptor{kind: c.Kind(), inst: c}
}

// Kind reports the descriptor's constraint kind.
func (d Descriptor) Kind() ConstraintKind { return d.kind }

// IsInstance reports whether the descriptor carries a concrete constraint
// rather than a bare class tag.
func (d Descriptor) IsInstance() bool { return d.inst != nil }

// Constraint returns the concrete instance, or nil for a class tag.
func (d Descriptor) Constraint() Constraint { return d.inst }

// Implies reports whether the admissible-value domain of a is a subset of
// the domain of b. No concrete value is inspected: the verdict follows from
// kind identity, class/instance discrimination and, for concrete interval
// pairs, a bound-containment check.
func Implies(a, b Descriptor) bool {
	switch fa, fb := family(a.kind), family(b.kind); {
	case fa == famSimple && fb == famSimple:
		return impliesSimple(a.kind, b.kind)

	case fa == famInterval && fb == famSimple:
		// The union over all bounds of a type-restricted interval class
		// degenerates to that type's unrestricted domain.
		return b.kind == KindAny || b.kind == KindNumeric ||
			(a.kind == KindBoundedInt && b.kind == KindInt) ||
			(a.kind == KindBoundedFloat && b.kind == KindFloat)

	case fa == famSimple && fb == famInterval:
		// No simple domain fits inside a numeric-interval domain: Any and
		// Numeric are supersets, the rest are disjoint or uncontained.
		return false

	case fa == famInterval && fb == famInterval:
		return impliesInterval(a, b)

	case fa == famLiteral && fb == famLiteral:
		return impliesLiteral(a, b)

	case fa == famLiteral && fb == famSimple:
		// String domains are disjoint from the numeric and boolean
		// domains; Any is the sole universal target.
		return b.kind == KindAny

	default:
		// Simple or interval against literal, either direction.
		return false
	}
}

// impliesSimple handles the non-parametric kinds, where instance and class
// tag are interchangeable.
func impliesSimple(a, b ConstraintKind) bool {
	if a == b || b == KindAny {
		return true
	}
	return (a == KindInt || a == KindFloat) && b == KindNumeric
}

// impliesInterval handles interval-family pairs in all four
// class/instance combinations.
func impliesInterval(a, b Descriptor) bool {
	if b.IsInstance() {
		// A class tag, the union over all bounds, is never contained in
		// one specific bounded instance.
		if !a.IsInstance() {
			return false
		}
		alo, ahi := intervalBounds(a.inst)
		blo, bhi := intervalBounds(b.inst)
		if !(blo <= alo && ahi <= bhi) {
			return false
		}
	}
	// Type compatibility: same concrete subtype, or the base interval,
	// which admits both integer and float payloads. BoundedInt and
	// BoundedFloat never imply each other; their payload restrictions are
	// disjoint.
	return a.kind == b.kind || b.kind == KindInterval
}

// impliesLiteral handles LiteralStr pairs. The bare class tag denotes the
// set of all strings.
func impliesLiteral(a, b Descriptor) bool {
	if !b.IsInstance() {
		return true
	}
	if !a.IsInstance() {
		return false
	}
	as, aok := a.inst.(LiteralStrConstraint)
	bs, bok := b.inst.(LiteralStrConstraint)
	if !aok || !bok {
		return false
	}
	for lit := range as.set {
		if !bs.Contains(lit) {
			return false
		}
	}
	return true
}

func intervalBounds(c Constraint) (lo, hi float64) {
	ib, ok := c.(interface{ Bounds() (float64, float64) })
	if !ok {
		return 0, 0
	}
	return ib.Bounds()
}
