package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [store]",
		Short: "List stores, or the entries of a store",
		Long: `List with no arguments prints every store with its constraint. With a
store name it prints the store's keys and values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("open storage: %s", err))
	}
	defer backend.Close()

	if len(args) == 0 {
		names, err := backend.Stores()
		if err != nil {
			return exitError(exitSysError, err.Error())
		}
		for _, name := range names {
			c, err := backend.StoreConstraint(name)
			if err != nil {
				return exitError(exitSysError, err.Error())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, config.FormatConstraint(c))
		}
		return nil
	}

	keys, err := backend.Keys(args[0])
	if err != nil {
		return exitError(exitUserError, err.Error())
	}
	for _, key := range keys {
		v, err := backend.Get(args[0], key)
		if err != nil {
			return exitError(exitSysError, err.Error())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%#v\n", key, v)
	}
	return nil
}
