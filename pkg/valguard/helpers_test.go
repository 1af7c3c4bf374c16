// Shared test constructors. These panic on error so tables of known-good
// values stay readable; constructor failures have their own tests.
package valguard

func mustIntValue(v int64) IntValue {
	x, err := NewIntValue(v)
	if err != nil {
		panic(err)
	}
	return x
}

func mustFloatValue(v float64) FloatValue {
	x, err := NewFloatValue(v)
	if err != nil {
		panic(err)
	}
	return x
}

func mustBoolValue(v bool) BoolValue {
	x, err := NewBoolValue(v)
	if err != nil {
		panic(err)
	}
	return x
}

func mustStrValue(v string) StrValue {
	x, err := NewStrValue(v)
	if err != nil {
		panic(err)
	}
	return x
}

func mustInterval(lo, hi float64) IntervalConstraint {
	c, err := NewIntervalConstraint(lo, hi)
	if err != nil {
		panic(err)
	}
	return c
}

func mustBoundedInt(lo, hi float64) BoundedIntConstraint {
	c, err := NewBoundedIntConstraint(lo, hi)
	if err != nil {
		panic(err)
	}
	return c
}

func mustBoundedFloat(lo, hi float64) BoundedFloatConstraint {
	c, err := NewBoundedFloatConstraint(lo, hi)
	if err != nil {
		panic(err)
	}
	return c
}

func mustLiteralStr(literals ...string) LiteralStrConstraint {
	c, err := NewLiteralStrConstraint(literals)
	if err != nil {
		panic(err)
	}
	return c
}
