package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete captured words and their review history",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		for _, id := range args {
			if err := a.svc.Remove(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove %s: %w", id, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed", id)
		}
		return nil
	},
}
