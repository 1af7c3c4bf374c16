package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <store> <key>",
		Short: "Read a value from a store",
		Args:  cobra.ExactArgs(2),
		RunE:  runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open storage: %s", err))
	}
	defer backend.Close()

	v, err := backend.Get(args[0], args[1])
	if err != nil {
		return exitError(exitUserError, err.Error())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%#v\n", v)
	return nil
}
