package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/spacedrep"
	"github.com/abhisek/clipvocab/internal/ui/components"
	"github.com/abhisek/clipvocab/internal/ui/theme"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show words waiting for review, most overdue first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		due, err := a.svc.Due(cmd.Context(), time.Now(), limit)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, due)
		}
		if len(due) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review right now.")
			return nil
		}

		rows := make([][]string, len(due))
		for i, d := range due {
			status := string(d.Status)
			if d.Status == spacedrep.StatusLate {
				status = theme.Late.Render(fmt.Sprintf("late %.0fd", d.OverdueDays))
			}
			rows[i] = []string{d.ID, truncate(d.Word, 24), theme.Stage(d.Review.Stage).Render(d.StageLabel()), status}
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), components.Table([]string{"ID", "Word", "Stage", "Status"}, rows))
		return nil
	},
}

func init() {
	dueCmd.Flags().IntP("limit", "n", 0, "Number of entries to show (0 = all)")
	dueCmd.Flags().Bool("json", false, "Print due entries as JSON")
}
