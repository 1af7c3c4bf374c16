package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/pkg/valguard"
)

const modulePath = "github.com/mesh-intelligence/valguard"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the valguard version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "valguard v%s\nmodule: %s\n", valguard.Version, modulePath)
			return nil
		},
	}
}
