// Tests for the subsumption engine, exercising every cell of the decision
// table: simple kinds, interval family and literal sets, as class tags and
// as concrete instances.
package valguard

import "testing"

var simpleKinds = []ConstraintKind{KindAny, KindNumeric, KindInt, KindFloat, KindBool}

var intervalKinds = []ConstraintKind{KindInterval, KindBoundedInt, KindBoundedFloat}

// simpleInstance returns a concrete instance of a non-parametric kind.
func simpleInstance(k ConstraintKind) Constraint {
	switch k {
	case KindAny:
		return AnyConstraint{}
	case KindNumeric:
		return NumericConstraint{}
	case KindInt:
		return IntConstraint{}
	case KindFloat:
		return FloatConstraint{}
	case KindBool:
		return BoolConstraint{}
	default:
		panic("not a simple kind")
	}
}

// intervalInstance returns a concrete interval-family instance over
// [lo, hi].
func intervalInstance(k ConstraintKind, lo, hi float64) Constraint {
	switch k {
	case KindInterval:
		return mustInterval(lo, hi)
	case KindBoundedInt:
		return mustBoundedInt(lo, hi)
	case KindBoundedFloat:
		return mustBoundedFloat(lo, hi)
	default:
		panic("not an interval kind")
	}
}

// simpleDescriptors returns a kind's class tag and instance descriptor;
// for non-parametric kinds the two are equivalent.
func simpleDescriptors(k ConstraintKind) []Descriptor {
	return []Descriptor{Class(k), Instance(simpleInstance(k))}
}

func TestImpliesSimpleVsSimple(t *testing.T) {
	for _, k1 := range simpleKinds {
		for _, k2 := range simpleKinds {
			want := k1 == k2 || k2 == KindAny ||
				((k1 == KindInt || k1 == KindFloat) && k2 == KindNumeric)
			for _, a := range simpleDescriptors(k1) {
				for _, b := range simpleDescriptors(k2) {
					if got := Implies(a, b); got != want {
						t.Errorf("Implies(%v, %v) = %v, want %v", k1, k2, got, want)
					}
				}
			}
		}
	}
}

func TestImpliesIntervalClassVsIntervalClass(t *testing.T) {
	for _, k1 := range intervalKinds {
		for _, k2 := range intervalKinds {
			want := k1 == k2 || k2 == KindInterval
			if got := Implies(Class(k1), Class(k2)); got != want {
				t.Errorf("Implies(Class(%v), Class(%v)) = %v, want %v", k1, k2, got, want)
			}
		}
	}
}

func TestImpliesIntervalClassVsSimple(t *testing.T) {
	for _, k1 := range intervalKinds {
		for _, k2 := range simpleKinds {
			want := k2 == KindAny || k2 == KindNumeric ||
				(k1 == KindBoundedInt && k2 == KindInt) ||
				(k1 == KindBoundedFloat && k2 == KindFloat)
			for _, b := range simpleDescriptors(k2) {
				if got := Implies(Class(k1), b); got != want {
					t.Errorf("Implies(Class(%v), %v) = %v, want %v", k1, k2, got, want)
				}
				// An instance's domain is a subset of its class's, so the
				// verdict against a simple target is the same.
				a := Instance(intervalInstance(k1, 0, 1))
				if got := Implies(a, b); got != want {
					t.Errorf("Implies(%v(0,1), %v) = %v, want %v", k1, k2, got, want)
				}
			}
		}
	}
}

func TestImpliesSimpleVsInterval(t *testing.T) {
	for _, k1 := range simpleKinds {
		for _, k2 := range intervalKinds {
			for _, a := range simpleDescriptors(k1) {
				if Implies(a, Class(k2)) {
					t.Errorf("Implies(%v, Class(%v)) = true, want false", k1, k2)
				}
				if Implies(a, Instance(intervalInstance(k2, 0, 1))) {
					t.Errorf("Implies(%v, %v(0,1)) = true, want false", k1, k2)
				}
			}
		}
	}
}

func TestImpliesIntervalInstanceVsClass(t *testing.T) {
	for _, k1 := range intervalKinds {
		for _, k2 := range intervalKinds {
			a := Instance(intervalInstance(k1, 0, 1))
			want := k1 == k2 || k2 == KindInterval
			if got := Implies(a, Class(k2)); got != want {
				t.Errorf("Implies(%v(0,1), Class(%v)) = %v, want %v", k1, k2, got, want)
			}
			// A class tag, the union over all bounds, never fits inside
			// one concrete instance.
			if Implies(Class(k1), Instance(intervalInstance(k2, 0, 1))) {
				t.Errorf("Implies(Class(%v), %v(0,1)) = true, want false", k1, k2)
			}
		}
	}
}

func TestImpliesIntervalInstanceVsInstance(t *testing.T) {
	intervals := []struct {
		a, b   [2]float64
		subset bool
	}{
		{[2]float64{0, 1}, [2]float64{0.2, 0.8}, false},
		{[2]float64{0.2, 0.8}, [2]float64{0, 1}, true},
		{[2]float64{0, 1}, [2]float64{2, 3}, false},
		{[2]float64{0, 1}, [2]float64{0, 1}, true},
	}
	for _, k1 := range intervalKinds {
		for _, k2 := range intervalKinds {
			for _, iv := range intervals {
				a := Instance(intervalInstance(k1, iv.a[0], iv.a[1]))
				b := Instance(intervalInstance(k2, iv.b[0], iv.b[1]))
				want := iv.subset && (k1 == k2 || k2 == KindInterval)
				if got := Implies(a, b); got != want {
					t.Errorf("Implies(%v%v, %v%v) = %v, want %v",
						k1, iv.a, k2, iv.b, got, want)
				}
			}
		}
	}
}

func TestImpliesBoundedIntNeverImpliesBoundedFloat(t *testing.T) {
	bi := Instance(mustBoundedInt(0, 10))
	bf := Instance(mustBoundedFloat(0, 10))
	if Implies(bi, bf) || Implies(bf, bi) {
		t.Error("disjoint payload restrictions must not imply each other")
	}
}

func TestImpliesLiteralVsSimple(t *testing.T) {
	literalDescs := []Descriptor{Class(KindLiteralStr), Instance(mustLiteralStr("P"))}
	for _, k2 := range simpleKinds {
		want := k2 == KindAny
		for _, a := range literalDescs {
			for _, b := range simpleDescriptors(k2) {
				if got := Implies(a, b); got != want {
					t.Errorf("Implies(LiteralStr, %v) = %v, want %v", k2, got, want)
				}
			}
		}
	}
	// Reverse direction is always false, Any included.
	for _, k1 := range simpleKinds {
		for _, a := range simpleDescriptors(k1) {
			for _, b := range literalDescs {
				if Implies(a, b) {
					t.Errorf("Implies(%v, LiteralStr) = true, want false", k1)
				}
			}
		}
	}
}

func TestImpliesLiteralVsInterval(t *testing.T) {
	literalDescs := []Descriptor{Class(KindLiteralStr), Instance(mustLiteralStr("P"))}
	for _, k := range intervalKinds {
		intervalDescs := []Descriptor{Class(k), Instance(intervalInstance(k, 0, 1))}
		for _, a := range literalDescs {
			for _, b := range intervalDescs {
				if Implies(a, b) {
					t.Errorf("Implies(LiteralStr, %v) = true, want false", k)
				}
				if Implies(b, a) {
					t.Errorf("Implies(%v, LiteralStr) = true, want false", k)
				}
			}
		}
	}
}

func TestImpliesLiteralVsLiteral(t *testing.T) {
	cls := Class(KindLiteralStr)
	inst := Instance(mustLiteralStr("P"))

	if !Implies(cls, cls) {
		t.Error("class vs class should hold")
	}
	if !Implies(inst, cls) {
		t.Error("an instance is a member of its class's union")
	}
	if Implies(cls, inst) {
		t.Error("the unrestricted union never fits one finite set")
	}

	subsets := []struct {
		a, b []string
		want bool
	}{
		{[]string{"A", "B"}, []string{"A", "B"}, true},
		{[]string{"C", "D"}, []string{"C", "D", "E"}, true},
		{[]string{"C", "D", "E"}, []string{"C", "E"}, false},
	}
	for _, tt := range subsets {
		a := Instance(mustLiteralStr(tt.a...))
		b := Instance(mustLiteralStr(tt.b...))
		if got := Implies(a, b); got != tt.want {
			t.Errorf("Implies(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestImpliesReflexive(t *testing.T) {
	for _, c := range allConstraints() {
		if !Implies(Instance(c), Instance(c)) {
			t.Errorf("Implies(%s, %s) = false, want true", c, c)
		}
	}
}

func TestImpliesTransitivityExample(t *testing.T) {
	bounded := Instance(mustBoundedInt(0, 10))
	intTag := Class(KindInt)
	numericTag := Class(KindNumeric)

	if !Implies(bounded, intTag) {
		t.Error("BoundedInt(0,10) should imply Int")
	}
	if !Implies(intTag, numericTag) {
		t.Error("Int should imply Numeric")
	}
	if !Implies(bounded, numericTag) {
		t.Error("BoundedInt(0,10) should imply Numeric")
	}
}

func TestImpliesNilInstance(t *testing.T) {
	if !Implies(Instance(nil), Class(KindAny)) {
		t.Error("nil constraint degenerates to the Any class tag")
	}
}
