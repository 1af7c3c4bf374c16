// Package cli implements the valguard command-line interface.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/internal/config"
	"github.com/mesh-intelligence/valguard/internal/sqlite"
	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
}

var flags rootFlags

// NewRootCmd creates the top-level "valguard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "valguard",
		Short: "Typed values with runtime constraints",
		Long:  "Valguard validates typed values against declared constraints,\nchecks constraint subsumption, and manages constrained key/value stores.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: .valguard)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: .valguard-db)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newImpliesCmd())
	root.AddCommand(newCreateCmd())
	root.AddCommand(newSetCmd())
	root.AddCommand(newGetCmd())
	root.AddCommand(newDeleteCmd())
	root.AddCommand(newListCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() string {
	if flags.configDir != "" {
		return flags.configDir
	}
	if v := os.Getenv("VALGUARD_CONFIG_DIR"); v != "" {
		return v
	}
	return ".valguard"
}

// resolveDataDir returns the data directory from flag, env, or default.
func resolveDataDir() string {
	if flags.dataDir != "" {
		return flags.dataDir
	}
	if v := os.Getenv("VALGUARD_DATA_DIR"); v != "" {
		return v
	}
	return ".valguard-db"
}

// openBackend opens the SQLite store in the resolved data directory.
func openBackend() (*sqlite.Backend, error) {
	return sqlite.Open(resolveDataDir())
}

// resolveConstraint interprets spec as a name declared in constraints.yaml,
// falling back to an inline descriptor such as "bounded_int[0,100]".
func resolveConstraint(spec string) (valguard.Constraint, error) {
	declared, err := config.Load(resolveConfigDir())
	if err != nil {
		return nil, err
	}
	if c, ok := declared[spec]; ok {
		return c, nil
	}
	return config.ParseConstraint(spec)
}

// parseRaw converts a literal argument to a Value. Integers and floats
// are recognized first, then booleans; anything else is a string.
func parseRaw(raw string) (valguard.Value, error) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		v, err := valguard.NewIntValue(i)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		v, err := valguard.NewFloatValue(f)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		v, err := valguard.NewBoolValue(b)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	v, err := valguard.NewStrValue(raw)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// exitError prints the error to stderr and exits with the given code.
func exitError(code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
