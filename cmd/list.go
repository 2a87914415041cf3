package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/ui/components"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured words, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.svc.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No words captured yet.")
			return nil
		}

		rows := make([][]string, len(entries))
		for i, e := range entries {
			rows[i] = []string{
				e.ID,
				truncate(e.Word, 24),
				truncate(e.Translation, 24),
				e.StageLabel(),
				nextReview(e),
			}
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), components.Table(
			[]string{"ID", "Word", "Translation", "Stage", "Next review"}, rows))
		return nil
	},
}

func init() {
	listCmd.Flags().IntP("limit", "n", 50, "Number of entries to show (0 = all)")
	listCmd.Flags().Bool("json", false, "Print entries as JSON")
}
