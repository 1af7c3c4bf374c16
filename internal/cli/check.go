package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <constraint> <value>",
		Short: "Validate a value against a constraint",
		Long: `Check validates a raw literal against a constraint. The constraint may
be a name declared in constraints.yaml or an inline form such as
"bounded_int[0,100]" or "literal_str[H1,H2A]".

Example:
  valguard check score 42
  valguard check "interval[0,1]" 0.5`,
		Args: cobra.ExactArgs(2),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	c, err := resolveConstraint(args[0])
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("resolve constraint: %s", err))
	}

	v, err := parseRaw(args[1])
	if err != nil {
		return exitError(exitUserError, fmt.Sprintf("parse value: %s", err))
	}

	if _, err := c.Validate(v); err != nil {
		return exitError(exitUserError, err.Error())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%#v satisfies %s\n", v, c)
	return nil
}
