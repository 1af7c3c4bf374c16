// Constraint hierarchy: a closed set of admissible-value domains over the
// Value variants. Constraints are immutable value objects and pure
// predicates; Validate returns its input unchanged on success.
package valguard

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ConstraintKind identifies a constraint in the closed hierarchy.
type ConstraintKind int

// Constraint kinds.
const (
	KindAny ConstraintKind = iota
	KindNumeric
	KindInt
	KindFloat
	KindBool
	KindInterval
	KindBoundedInt
	KindBoundedFloat
	KindLiteralStr
)

// String returns the constraint type name.
func (k ConstraintKind) String() string {
	switch k {
	case KindAny:
		return "AnyConstraint"
	case KindNumeric:
		return "NumericConstraint"
	case KindInt:
		return "IntConstraint"
	case KindFloat:
		return "FloatConstraint"
	case KindBool:
		return "BoolConstraint"
	case KindInterval:
		return "IntervalConstraint"
	case KindBoundedInt:
		return "BoundedIntConstraint"
	case KindBoundedFloat:
		return "BoundedFloatConstraint"
	case KindLiteralStr:
		return "LiteralStrConstraint"
	default:
		return "unknown"
	}
}

// Constraint represents an admissible-value domain. Validate reports
// whether a Value is a member of the domain, returning the value unchanged
// on success and ErrValidation on failure.
type Constraint interface {
	Kind() ConstraintKind
	Validate(v Value) (Value, error)
	fmt.Stringer
}

// requireValue rejects a nil Value before any domain check.
func requireValue(v Value) error {
	if v == nil {
		return fmt.Errorf("%w: expected a Value instance, got nil", ErrValidation)
	}
	return nil
}

// wrongKindError builds the validation error for a value of the wrong
// variant, naming the expected kind and echoing the value.
func wrongKindError(expected string, v Value) error {
	return fmt.Errorf("%w: expected %s, got %#v", ErrValidation, expected, v)
}

// AnyConstraint accepts every Value.
type AnyConstraint struct{}

func (AnyConstraint) Kind() ConstraintKind { return KindAny }

func (AnyConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (AnyConstraint) String() string { return KindAny.String() }

// NumericConstraint accepts every IntValue or FloatValue.
type NumericConstraint struct{}

func (NumericConstraint) Kind() ConstraintKind { return KindNumeric }

func (NumericConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if _, ok := numericMagnitude(v); !ok {
		return nil, wrongKindError("a numeric", v)
	}
	return v, nil
}

func (NumericConstraint) String() string { return KindNumeric.String() }

// IntConstraint accepts every IntValue.
type IntConstraint struct{}

func (IntConstraint) Kind() ConstraintKind { return KindInt }

func (IntConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if v.Kind() != ValueInt {
		return nil, wrongKindError("an integer", v)
	}
	return v, nil
}

func (IntConstraint) String() string { return KindInt.String() }

// FloatConstraint accepts every FloatValue.
type FloatConstraint struct{}

func (FloatConstraint) Kind() ConstraintKind { return KindFloat }

func (FloatConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if v.Kind() != ValueFloat {
		return nil, wrongKindError("a float", v)
	}
	return v, nil
}

func (FloatConstraint) String() string { return KindFloat.String() }

// BoolConstraint accepts every BoolValue.
type BoolConstraint struct{}

func (BoolConstraint) Kind() ConstraintKind { return KindBool }

func (BoolConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if v.Kind() != ValueBool {
		return nil, wrongKindError("a boolean", v)
	}
	return v, nil
}

func (BoolConstraint) String() string { return KindBool.String() }

// IntervalConstraint accepts every IntValue or FloatValue whose magnitude
// lies in the closed range [lo, hi].
type IntervalConstraint struct {
	lo, hi float64
}

// NewIntervalConstraint builds an interval over [lo, hi]. Bounds must be
// finite with lo <= hi, else ErrConfiguration.
func NewIntervalConstraint(lo, hi float64) (IntervalConstraint, error) {
	if err := checkBounds(lo, hi); err != nil {
		return IntervalConstraint{}, err
	}
	return IntervalConstraint{lo: lo, hi: hi}, nil
}

func checkBounds(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: invalid bounds: expected finite float, got %v, %v",
			ErrConfiguration, lo, hi)
	}
	if lo > hi {
		return fmt.Errorf("%w: invalid bounds: %s > %s",
			ErrConfiguration, formatBound(lo), formatBound(hi))
	}
	return nil
}

func (c IntervalConstraint) Kind() ConstraintKind { return KindInterval }

// Bounds returns the closed range accepted by the interval.
func (c IntervalConstraint) Bounds() (lo, hi float64) { return c.lo, c.hi }

// SameInterval reports whether other is an interval-family constraint with
// exactly the same bounds, regardless of interval subtype. This is a
// bounds-only comparison, distinct from subsumption.
func (c IntervalConstraint) SameInterval(other Constraint) bool {
	ib, ok := other.(interface{ Bounds() (float64, float64) })
	if !ok {
		return false
	}
	lo, hi := ib.Bounds()
	return lo == c.lo && hi == c.hi
}

// checkMagnitude tests a widened numeric payload against the bounds.
func (c IntervalConstraint) checkMagnitude(f float64) error {
	if f < c.lo || f > c.hi {
		return fmt.Errorf("%w: %s lies outside [%s, %s]",
			ErrValidation, formatBound(f), formatBound(c.lo), formatBound(c.hi))
	}
	return nil
}

func (c IntervalConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	f, ok := numericMagnitude(v)
	if !ok {
		return nil, wrongKindError("a numeric", v)
	}
	if err := c.checkMagnitude(f); err != nil {
		return nil, err
	}
	return v, nil
}

func (c IntervalConstraint) String() string {
	return fmt.Sprintf("%s[%s, %s]", KindInterval, formatBound(c.lo), formatBound(c.hi))
}

// BoundedIntConstraint restricts an interval to IntValue payloads.
type BoundedIntConstraint struct {
	IntervalConstraint
}

// NewBoundedIntConstraint builds an integer-restricted interval over
// [lo, hi]. Bounds must be finite with lo <= hi, else ErrConfiguration.
func NewBoundedIntConstraint(lo, hi float64) (BoundedIntConstraint, error) {
	iv, err := NewIntervalConstraint(lo, hi)
	if err != nil {
		return BoundedIntConstraint{}, err
	}
	return BoundedIntConstraint{IntervalConstraint: iv}, nil
}

func (c BoundedIntConstraint) Kind() ConstraintKind { return KindBoundedInt }

func (c BoundedIntConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if v.Kind() != ValueInt {
		return nil, wrongKindError("an integer", v)
	}
	f, _ := numericMagnitude(v)
	if err := c.checkMagnitude(f); err != nil {
		return nil, err
	}
	return v, nil
}

func (c BoundedIntConstraint) String() string {
	return fmt.Sprintf("%s[%s, %s]", KindBoundedInt, formatBound(c.lo), formatBound(c.hi))
}

// BoundedFloatConstraint restricts an interval to FloatValue payloads.
type BoundedFloatConstraint struct {
	IntervalConstraint
}

// NewBoundedFloatConstraint builds a float-restricted interval over
// [lo, hi]. Bounds must be finite with lo <= hi, else ErrConfiguration.
func NewBoundedFloatConstraint(lo, hi float64) (BoundedFloatConstraint, error) {
	iv, err := NewIntervalConstraint(lo, hi)
	if err != nil {
		return BoundedFloatConstraint{}, err
	}
	return BoundedFloatConstraint{IntervalConstraint: iv}, nil
}

func (c BoundedFloatConstraint) Kind() ConstraintKind { return KindBoundedFloat }

func (c BoundedFloatConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	if v.Kind() != ValueFloat {
		return nil, wrongKindError("a float", v)
	}
	f, _ := numericMagnitude(v)
	if err := c.checkMagnitude(f); err != nil {
		return nil, err
	}
	return v, nil
}

func (c BoundedFloatConstraint) String() string {
	return fmt.Sprintf("%s[%s, %s]", KindBoundedFloat, formatBound(c.lo), formatBound(c.hi))
}

// LiteralStrConstraint accepts every StrValue whose payload belongs to a
// fixed, non-empty literal set.
type LiteralStrConstraint struct {
	set map[string]struct{}
}

// NewLiteralStrConstraint builds a literal-set constraint. The input must
// contain at least one entry and no entry may be blank after trimming;
// duplicates are removed. Violations return ErrConfiguration.
func NewLiteralStrConstraint(literals []string) (LiteralStrConstraint, error) {
	set := make(map[string]struct{}, len(literals))
	for _, lit := range literals {
		if strings.TrimSpace(lit) == "" {
			return LiteralStrConstraint{}, fmt.Errorf(
				"%w: invalid literals: expected non-blank strings, got %q",
				ErrConfiguration, literals)
		}
		set[lit] = struct{}{}
	}
	if len(set) == 0 {
		return LiteralStrConstraint{}, fmt.Errorf(
			"%w: invalid literals: expected a non-empty set", ErrConfiguration)
	}
	return LiteralStrConstraint{set: set}, nil
}

func (c LiteralStrConstraint) Kind() ConstraintKind { return KindLiteralStr }

// Literals returns the admitted literals in sorted order.
func (c LiteralStrConstraint) Literals() []string {
	out := make([]string, 0, len(c.set))
	for lit := range c.set {
		out = append(out, lit)
	}
	sort.Strings(out)
	return out
}

// Contains reports membership of a raw string in the literal set.
func (c LiteralStrConstraint) Contains(lit string) bool {
	_, ok := c.set[lit]
	return ok
}

func (c LiteralStrConstraint) Validate(v Value) (Value, error) {
	if err := requireValue(v); err != nil {
		return nil, err
	}
	sv, ok := v.(StrValue)
	if !ok {
		return nil, wrongKindError("a string literal", v)
	}
	if !c.Contains(sv.v) {
		return nil, fmt.Errorf("%w: invalid literal: %s not in {%s}",
			ErrValidation, sv.v, quoteJoin(c.Literals()))
	}
	return v, nil
}

func (c LiteralStrConstraint) String() string {
	return fmt.Sprintf("%s(%s)", KindLiteralStr, quoteJoin(c.Literals()))
}

// quoteJoin renders sorted literals as 'A', 'B', 'C'.
func quoteJoin(literals []string) string {
	quoted := make([]string, len(literals))
	for i, lit := range literals {
		quoted[i] = "'" + lit + "'"
	}
	return strings.Join(quoted, ", ")
}

// formatBound renders a bound or widened magnitude, keeping one decimal on
// integral values so bounds read as floats.
func formatBound(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%.1f", f)
	}
	return fmt.Sprintf("%g", f)
}
