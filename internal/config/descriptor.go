// Textual constraint descriptors. The CLI and the persistent store both
// round-trip constraints through this one-line form: a bare kind name is a
// class tag, a bracketed kind is a concrete instance.
//
//	bounded_int              class tag
//	bounded_int[0,100]       instance with bounds
//	literal_str[H1,H2A]      instance with a literal set
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

// kindNames maps descriptor kind names to constraint kinds.
var kindNames = map[string]valguard.ConstraintKind{
	"any":           valguard.KindAny,
	"numeric":       valguard.KindNumeric,
	"int":           valguard.KindInt,
	"float":         valguard.KindFloat,
	"bool":          valguard.KindBool,
	"interval":      valguard.KindInterval,
	"bounded_int":   valguard.KindBoundedInt,
	"bounded_float": valguard.KindBoundedFloat,
	"literal_str":   valguard.KindLiteralStr,
}

// KindName returns the descriptor name of a constraint kind.
func KindName(k valguard.ConstraintKind) string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// ParseDescriptor parses a textual descriptor into a class tag or a
// concrete instance.
func ParseDescriptor(s string) (valguard.Descriptor, error) {
	s = strings.TrimSpace(s)
	name, params, hasParams := cutParams(s)

	kind, ok := kindNames[name]
	if !ok {
		return valguard.Descriptor{}, fmt.Errorf("%w: unknown constraint kind %q",
			valguard.ErrConfiguration, name)
	}
	if !hasParams {
		return valguard.Class(kind), nil
	}

	c, err := instanceFromParams(kind, params)
	if err != nil {
		return valguard.Descriptor{}, err
	}
	return valguard.Instance(c), nil
}

// ParseConstraint parses a textual descriptor that must denote a concrete
// constraint. Non-parametric kinds need no parameters; interval and
// literal kinds require them.
func ParseConstraint(s string) (valguard.Constraint, error) {
	d, err := ParseDescriptor(s)
	if err != nil {
		return nil, err
	}
	if d.IsInstance() {
		return d.Constraint(), nil
	}
	switch d.Kind() {
	case valguard.KindAny:
		return valguard.AnyConstraint{}, nil
	case valguard.KindNumeric:
		return valguard.NumericConstraint{}, nil
	case valguard.KindInt:
		return valguard.IntConstraint{}, nil
	case valguard.KindFloat:
		return valguard.FloatConstraint{}, nil
	case valguard.KindBool:
		return valguard.BoolConstraint{}, nil
	default:
		return nil, fmt.Errorf("%w: constraint kind %q requires parameters",
			valguard.ErrConfiguration, KindName(d.Kind()))
	}
}

// FormatConstraint renders a constraint as a parseable descriptor.
func FormatConstraint(c valguard.Constraint) string {
	name := KindName(c.Kind())
	switch c.Kind() {
	case valguard.KindInterval, valguard.KindBoundedInt, valguard.KindBoundedFloat:
		ib := c.(interface{ Bounds() (float64, float64) })
		lo, hi := ib.Bounds()
		return fmt.Sprintf("%s[%s,%s]", name,
			strconv.FormatFloat(lo, 'g', -1, 64),
			strconv.FormatFloat(hi, 'g', -1, 64))
	case valguard.KindLiteralStr:
		ls := c.(valguard.LiteralStrConstraint)
		return fmt.Sprintf("%s[%s]", name, strings.Join(ls.Literals(), ","))
	default:
		return name
	}
}

// cutParams splits "kind[params]" into its parts.
func cutParams(s string) (name, params string, ok bool) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		return s, "", false
	}
	if !strings.HasSuffix(s, "]") {
		return s, "", false
	}
	return s[:open], s[open+1 : len(s)-1], true
}

// instanceFromParams builds a concrete constraint from bracketed
// parameters.
func instanceFromParams(kind valguard.ConstraintKind, params string) (valguard.Constraint, error) {
	switch kind {
	case valguard.KindInterval, valguard.KindBoundedInt, valguard.KindBoundedFloat:
		parts := strings.Split(params, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: invalid bounds: expected min,max, got %q",
				valguard.ErrConfiguration, params)
		}
		lo, err := parseBound(parts[0])
		if err != nil {
			return nil, err
		}
		hi, err := parseBound(parts[1])
		if err != nil {
			return nil, err
		}
		return intervalForKind(KindName(kind), lo, hi)
	case valguard.KindLiteralStr:
		literals := strings.Split(params, ",")
		for i := range literals {
			literals[i] = strings.TrimSpace(literals[i])
		}
		c, err := valguard.NewLiteralStrConstraint(literals)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: constraint kind %q takes no parameters",
			valguard.ErrConfiguration, KindName(kind))
	}
}

func parseBound(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid bounds: expected float, got '%s'",
			valguard.ErrConfiguration, strings.TrimSpace(s))
	}
	return f, nil
}
