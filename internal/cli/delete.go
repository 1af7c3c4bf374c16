package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <store> [key]",
		Short: "Delete a key from a store, or the store itself",
		Long: `Delete removes the given key from a store. With no key the entire
store and all its entries are removed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDelete,
	}
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open storage: %s", err))
	}
	defer backend.Close()

	if len(args) == 1 {
		if err := backend.DeleteStore(args[0]); err != nil {
			return exitError(exitUserError, err.Error())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted store %q\n", args[0])
		return nil
	}

	if err := backend.Delete(args[0], args[1]); err != nil {
		return exitError(exitUserError, err.Error())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s from %q\n", args[1], args[0])
	return nil
}
