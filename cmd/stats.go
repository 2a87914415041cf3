package cmd

import (
	"fmt"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/ui/components"
	"github.com/abhisek/clipvocab/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		st, err := a.svc.Stats(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, st)
		}

		out := cmd.OutOrStdout()
		if st.Total == 0 {
			fmt.Fprintln(out, "No words captured yet.")
			return nil
		}

		lipgloss.Fprintln(out, theme.Title.Render(fmt.Sprintf("%d words", st.Total))+
			theme.Subtitle.Render(fmt.Sprintf("  %d due, %d late", st.Due, st.Late)))

		rows := make([][]string, len(st.Stages))
		for i, sc := range st.Stages {
			rows[i] = []string{theme.Stage(sc.Stage).Render(sc.Label), strconv.Itoa(sc.Count)}
		}
		lipgloss.Fprintln(out, components.Table([]string{"Stage", "Words"}, rows))

		if st.Reviews > 0 {
			lipgloss.Fprintln(out, components.Meter("Accuracy", st.Correct, st.Reviews, 50))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}
