// Immutable typed value wrappers. Each variant validates its constructor
// input with an exact type check and forbids implicit conversions; payloads
// are retrieved through the variant accessor or Raw.
package valguard

import (
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the concrete variant of a Value.
type ValueKind int

// Value variants.
const (
	ValueInt ValueKind = iota
	ValueFloat
	ValueBool
	ValueStr
)

// String returns the kind name used in diagnostics.
func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueBool:
		return "bool"
	case ValueStr:
		return "str"
	default:
		return "unknown"
	}
}

// Value is an immutable, variant-typed wrapper around one validated
// primitive payload. The set of variants is closed: IntValue, FloatValue,
// BoolValue and StrValue. Two Values are equal only when both the variant
// and the payload match.
//
// The generic Bool, Int and Float conversions always fail with
// ErrImplicitConversion; the AsInt, AsFloat, AsBool and AsStr accessors
// fail with ErrTypeMismatch on any variant but their own.
type Value interface {
	// Kind reports the concrete variant.
	Kind() ValueKind
	// Raw returns the payload as its underlying Go type.
	Raw() any
	// Equal reports whether other has the same variant and payload.
	Equal(other Value) bool

	// Variant accessors.
	AsInt() (int64, error)
	AsFloat() (float64, error)
	AsBool() (bool, error)
	AsStr() (string, error)

	// Implicit-conversion guards.
	Bool() (bool, error)
	Int() (int64, error)
	Float() (float64, error)

	fmt.Stringer
	fmt.GoStringer

	// sealed prevents implementations outside this package, keeping the
	// variant set closed.
	sealed()
}

// valueBase provides the implicit-conversion guards and the rejecting
// defaults for every variant accessor. Each concrete variant embeds it and
// overrides only its own accessor.
type valueBase struct{}

func (valueBase) sealed() {}

func (valueBase) Bool() (bool, error)     { return false, ErrImplicitConversion }
func (valueBase) Int() (int64, error)     { return 0, ErrImplicitConversion }
func (valueBase) Float() (float64, error) { return 0, ErrImplicitConversion }

func (valueBase) AsInt() (int64, error)     { return 0, ErrTypeMismatch }
func (valueBase) AsFloat() (float64, error) { return 0, ErrTypeMismatch }
func (valueBase) AsBool() (bool, error)     { return false, ErrTypeMismatch }
func (valueBase) AsStr() (string, error)    { return "", ErrTypeMismatch }

// IntValue wraps a validated integer payload.
type IntValue struct {
	valueBase
	v int64
}

// NewIntValue validates raw as an integer. Any other runtime type,
// including bool and the float types, is rejected with ErrValidation.
func NewIntValue(raw any) (IntValue, error) {
	switch v := raw.(type) {
	case int:
		return IntValue{v: int64(v)}, nil
	case int32:
		return IntValue{v: int64(v)}, nil
	case int64:
		return IntValue{v: v}, nil
	default:
		return IntValue{}, rawTypeError(raw, "int")
	}
}

func (x IntValue) Kind() ValueKind { return ValueInt }
func (x IntValue) Raw() any        { return x.v }

// AsInt returns the integer payload.
func (x IntValue) AsInt() (int64, error) { return x.v, nil }

// ToFloat widens the payload for numeric bound comparisons.
func (x IntValue) ToFloat() float64 { return float64(x.v) }

func (x IntValue) Equal(other Value) bool {
	o, ok := other.(IntValue)
	return ok && o.v == x.v
}

func (x IntValue) String() string   { return strconv.FormatInt(x.v, 10) }
func (x IntValue) GoString() string { return fmt.Sprintf("IntValue(%d)", x.v) }

// FloatValue wraps a validated finite float payload. Construction rejects
// ±Inf and NaN.
type FloatValue struct {
	valueBase
	v float64
}

// NewFloatValue validates raw as a finite float. Integer inputs are not
// widened; they are rejected like any other non-float type.
func NewFloatValue(raw any) (FloatValue, error) {
	var f float64
	switch v := raw.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	default:
		return FloatValue{}, rawTypeError(raw, "float")
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return FloatValue{}, fmt.Errorf("%w: expected finite float, got %v", ErrValidation, f)
	}
	return FloatValue{v: f}, nil
}

func (x FloatValue) Kind() ValueKind { return ValueFloat }
func (x FloatValue) Raw() any        { return x.v }

// AsFloat returns the float payload.
func (x FloatValue) AsFloat() (float64, error) { return x.v, nil }

// ToFloat returns the payload for numeric bound comparisons.
func (x FloatValue) ToFloat() float64 { return x.v }

func (x FloatValue) Equal(other Value) bool {
	o, ok := other.(FloatValue)
	return ok && o.v == x.v
}

// String renders the payload with fixed 2-decimal precision.
func (x FloatValue) String() string { return strconv.FormatFloat(x.v, 'f', 2, 64) }

func (x FloatValue) GoString() string {
	return fmt.Sprintf("FloatValue(%s)", strconv.FormatFloat(x.v, 'g', -1, 64))
}

// BoolValue wraps a validated boolean payload.
type BoolValue struct {
	valueBase
	v bool
}

// NewBoolValue validates raw as a boolean.
func NewBoolValue(raw any) (BoolValue, error) {
	v, ok := raw.(bool)
	if !ok {
		return BoolValue{}, rawTypeError(raw, "bool")
	}
	return BoolValue{v: v}, nil
}

func (x BoolValue) Kind() ValueKind { return ValueBool }
func (x BoolValue) Raw() any        { return x.v }

// AsBool returns the boolean payload.
func (x BoolValue) AsBool() (bool, error) { return x.v, nil }

func (x BoolValue) Equal(other Value) bool {
	o, ok := other.(BoolValue)
	return ok && o.v == x.v
}

func (x BoolValue) String() string   { return strconv.FormatBool(x.v) }
func (x BoolValue) GoString() string { return fmt.Sprintf("BoolValue(%t)", x.v) }

// StrValue wraps a validated string payload, used for literal domains.
type StrValue struct {
	valueBase
	v string
}

// NewStrValue validates raw as a string.
func NewStrValue(raw any) (StrValue, error) {
	v, ok := raw.(string)
	if !ok {
		return StrValue{}, rawTypeError(raw, "str")
	}
	return StrValue{v: v}, nil
}

func (x StrValue) Kind() ValueKind { return ValueStr }
func (x StrValue) Raw() any        { return x.v }

// AsStr returns the string payload.
func (x StrValue) AsStr() (string, error) { return x.v, nil }

func (x StrValue) Equal(other Value) bool {
	o, ok := other.(StrValue)
	return ok && o.v == x.v
}

func (x StrValue) String() string   { return x.v }
func (x StrValue) GoString() string { return fmt.Sprintf("StrValue('%s')", x.v) }

// numericMagnitude widens a numeric Value to float64 for interval checks.
// The second result is false for non-numeric variants.
func numericMagnitude(v Value) (float64, bool) {
	switch x := v.(type) {
	case IntValue:
		return x.ToFloat(), true
	case FloatValue:
		return x.ToFloat(), true
	default:
		return 0, false
	}
}

// rawTypeError builds the validation error for a constructor input of the
// wrong runtime type.
func rawTypeError(raw any, expected string) error {
	return fmt.Errorf("%w: %s (type %T), expected type %s",
		ErrValidation, formatRaw(raw), raw, expected)
}

// formatRaw renders a raw constructor input for diagnostics, quoting
// strings.
func formatRaw(raw any) string {
	if s, ok := raw.(string); ok {
		return "'" + s + "'"
	}
	return fmt.Sprintf("%v", raw)
}
