// Package config loads named constraint declarations from a configuration
// directory and parses textual constraint descriptors. It is the boundary
// between external configuration and the valguard core: every structural
// problem in a declaration surfaces as valguard.ErrConfiguration before any
// data is validated.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

const (
	configFileName = "constraints"
	configFileType = "yaml"
	configFileExt  = "constraints.yaml"

	// Keys of a constraint declaration block.
	cfgKeyKind     = "kind"
	cfgKeyMin      = "min"
	cfgKeyMax      = "max"
	cfgKeyLiterals = "literals"
)

// defaultConstraintsYAML is written to the config directory on first run.
const defaultConstraintsYAML = `# valguard constraint declarations
#
# Each entry names a constraint. Kinds: any, numeric, int, float, bool,
# interval, bounded_int, bounded_float, literal_str.
#
# Interval kinds take min/max bounds; literal_str takes a literals list.

constraints:
  score:
    kind: bounded_int
    min: 0
    max: 100
  ratio:
    kind: bounded_float
    min: 0
    max: 1
  grade:
    kind: literal_str
    literals: [H1, H2A, H2B, P, F]
`

// Load reads constraints.yaml from configDir and builds the declared
// constraints. A missing file yields an empty map; a structurally invalid
// declaration yields valguard.ErrConfiguration naming the entry.
func Load(configDir string) (map[string]valguard.Constraint, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return map[string]valguard.Constraint{}, nil
		}
		return nil, fmt.Errorf("read constraints config: %w", err)
	}

	declared := v.GetStringMap("constraints")
	out := make(map[string]valguard.Constraint, len(declared))
	for name := range declared {
		sub := v.Sub("constraints." + name)
		if sub == nil {
			return nil, fmt.Errorf("%w: constraint %q: expected a declaration block",
				valguard.ErrConfiguration, name)
		}
		c, err := buildConstraint(sub)
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", name, err)
		}
		out[name] = c
	}
	return out, nil
}

// EnsureDefault creates configDir and a commented default constraints.yaml
// if one does not exist yet.
func EnsureDefault(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat constraints file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConstraintsYAML), 0o644)
}

// buildConstraint assembles one constraint from a declaration block.
func buildConstraint(v *viper.Viper) (valguard.Constraint, error) {
	kind := v.GetString(cfgKeyKind)
	switch kind {
	case "any":
		return valguard.AnyConstraint{}, nil
	case "numeric":
		return valguard.NumericConstraint{}, nil
	case "int":
		return valguard.IntConstraint{}, nil
	case "float":
		return valguard.FloatConstraint{}, nil
	case "bool":
		return valguard.BoolConstraint{}, nil
	case "interval", "bounded_int", "bounded_float":
		lo, err := boundValue(v.Get(cfgKeyMin))
		if err != nil {
			return nil, err
		}
		hi, err := boundValue(v.Get(cfgKeyMax))
		if err != nil {
			return nil, err
		}
		return intervalForKind(kind, lo, hi)
	case "literal_str":
		literals, err := literalValues(v.Get(cfgKeyLiterals))
		if err != nil {
			return nil, err
		}
		c, err := valguard.NewLiteralStrConstraint(literals)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "":
		return nil, fmt.Errorf("%w: missing constraint kind", valguard.ErrConfiguration)
	default:
		return nil, fmt.Errorf("%w: unknown constraint kind %q", valguard.ErrConfiguration, kind)
	}
}

func intervalForKind(kind string, lo, hi float64) (valguard.Constraint, error) {
	switch kind {
	case "bounded_int":
		c, err := valguard.NewBoundedIntConstraint(lo, hi)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "bounded_float":
		c, err := valguard.NewBoundedFloatConstraint(lo, hi)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		c, err := valguard.NewIntervalConstraint(lo, hi)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// boundValue converts a decoded YAML bound to float64. Anything
// non-numeric is a configuration error, echoing the offending value.
func boundValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		return 0, fmt.Errorf("%w: invalid bounds: expected float, got '%s'",
			valguard.ErrConfiguration, v)
	default:
		return 0, fmt.Errorf("%w: invalid bounds: expected float, got %v",
			valguard.ErrConfiguration, raw)
	}
}

// literalValues converts a decoded YAML list to strings. Non-string
// entries are a configuration error echoing the full list.
func literalValues(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: invalid literals: expected a list, got %v",
			valguard.ErrConfiguration, raw)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: invalid literals: expected strings, got %v",
				valguard.ErrConfiguration, items)
		}
		out = append(out, s)
	}
	return out, nil
}
