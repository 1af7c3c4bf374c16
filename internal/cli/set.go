package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <store> <key> <value>",
		Short: "Write a value to a constrained store",
		Long: `Set validates the value against the store's constraint and writes it
under the given key. A value that violates the constraint is rejected
and any prior value for the key is kept.

Example:
  valguard set scores alice 87`,
		Args: cobra.ExactArgs(3),
		RunE: runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	v, err := parseRaw(args[2])
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("parse value: %s", err))
	}

	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open storage: %s", err))
	}
	defer backend.Close()

	if err := backend.Put(args[0], args[1], v); err != nil {
		return exitError(exitUserError, err.Error())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s = %#v\n", args[1], v)
	return nil
}
