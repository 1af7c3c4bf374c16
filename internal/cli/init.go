package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/valguard/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize valguard configuration and storage",
		Long:  "Create the configuration directory with a default constraints.yaml\nand initialize the data directory.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir := resolveConfigDir()
	if err := config.EnsureDefault(configDir); err != nil {
		return exitError(exitSysError, fmt.Sprintf("write config: %s", err))
	}

	backend, err := openBackend()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("initialize storage: %s", err))
	}
	if err := backend.Close(); err != nil {
		return exitError(exitSysError, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "valguard initialized successfully")
	return nil
}
