// Value row encoding for the entries table. Each row carries the variant
// name and the payload rendered as text; decoding routes back through the
// Value constructors so only well-formed payloads rehydrate.
package sqlite

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

// encodeValue renders a Value as its (kind, payload) row form.
func encodeValue(v valguard.Value) (kind, payload string) {
	switch x := v.(type) {
	case valguard.IntValue:
		i, _ := x.AsInt()
		return valguard.ValueInt.String(), strconv.FormatInt(i, 10)
	case valguard.FloatValue:
		f, _ := x.AsFloat()
		return valguard.ValueFloat.String(), strconv.FormatFloat(f, 'g', -1, 64)
	case valguard.BoolValue:
		bv, _ := x.AsBool()
		return valguard.ValueBool.String(), strconv.FormatBool(bv)
	default:
		s, _ := v.AsStr()
		return valguard.ValueStr.String(), s
	}
}

// decodeValue rehydrates a Value from its row form.
func decodeValue(kind, payload string) (valguard.Value, error) {
	switch kind {
	case valguard.ValueInt.String():
		i, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing int payload %q: %w", payload, err)
		}
		v, err := valguard.NewIntValue(i)
		if err != nil {
			return nil, err
		}
		return v, nil
	case valguard.ValueFloat.String():
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing float payload %q: %w", payload, err)
		}
		v, err := valguard.NewFloatValue(f)
		if err != nil {
			return nil, err
		}
		return v, nil
	case valguard.ValueBool.String():
		bv, err := strconv.ParseBool(payload)
		if err != nil {
			return nil, fmt.Errorf("parsing bool payload %q: %w", payload, err)
		}
		v, err := valguard.NewBoolValue(bv)
		if err != nil {
			return nil, err
		}
		return v, nil
	case valguard.ValueStr.String():
		v, err := valguard.NewStrValue(payload)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}
}
