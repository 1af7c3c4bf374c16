package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <store> [constraint]",
		Short: "Create a constrained store",
		Long: `Create adds a named store to the data directory. Values written to the
store must satisfy its constraint. With no constraint the store accepts
any value.

Example:
  valguard create scores "bounded_int[0,100]"
  valguard create notes`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	var c valguard.Constraint
	if len(args) == 2 {
		var err error
		c, err = resolveConstraint(args[1])
		if err != nil {
			return exitError(exitUserError, fmt.Sprintf("resolve constraint: %s", err))
		}
	}

	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open storage: %s", err))
	}
	defer backend.Close()

	if _, err := backend.CreateStore(args[0], c); err != nil {
		return exitError(exitUserError, fmt.Sprintf("create store: %s", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created store %q\n", args[0])
	return nil
}
