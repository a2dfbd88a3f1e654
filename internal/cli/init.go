package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize phonebook storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config directory and config.yaml are created by setup.
			err := a.withDirectory(false, func(d *types.Directory) error { return nil })
			if err != nil {
				return fmt.Errorf("initialize storage: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Phonebook initialized successfully")
			return nil
		},
	}
}
