package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/internal/config"
	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

func newImpliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "implies <a> <b>",
		Short: "Check whether one constraint subsumes under another",
		Long: `Implies reports whether every value accepted by descriptor a is also
accepted by descriptor b. A descriptor is a bare kind name such as
"numeric" or a parameterized instance such as "bounded_int[0,100]".

Example:
  valguard implies int numeric
  valguard implies "interval[0.2,0.8]" "interval[0,1]"`,
		Args: cobra.ExactArgs(2),
		RunE: runImplies,
	}
}

func runImplies(cmd *cobra.Command, args []string) error {
	a, err := config.ParseDescriptor(args[0])
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("parse descriptor %q: %s", args[0], err))
	}
	b, err := config.ParseDescriptor(args[1])
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("parse descriptor %q: %s", args[1], err))
	}

	if valguard.Implies(a, b) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s implies %s\n", args[0], args[1])
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s does not imply %s\n", args[0], args[1])
	return nil
}
