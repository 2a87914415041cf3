package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/textmatch"
	"github.com/abhisek/clipvocab/internal/ui/components"
	"github.com/abhisek/clipvocab/internal/ui/theme"
	"github.com/abhisek/clipvocab/internal/vocab"
)

type gradeOutput struct {
	textmatch.Verdict
	Feedback []textmatch.WordDiff `json:"feedback,omitempty"`
}

var gradeCmd = &cobra.Command{
	Use:   "grade <answer> <reference>",
	Short: "Check an answer against a reference sentence",
	Long: "Grade an answer the way reviews are graded, using the configured mode and\n" +
		"threshold, and show how each strategy scored.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc := vocab.NewService(vocab.Deps{Logger: logger}, cfg.VocabConfig())

		answer, ref := args[0], args[1]
		res := gradeOutput{Verdict: svc.Grade(answer, ref)}
		if !res.Accepted {
			res.Feedback = textmatch.Feedback(answer, ref)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, res)
		}

		out := cmd.OutOrStdout()
		lipgloss.Fprintln(out, components.Verdict(res.Accepted)+theme.Hint.Render(fmt.Sprintf("  threshold %.2f, %s mode", cfg.Grading.Threshold, cfg.Grading.Mode)))

		rows := make([][]string, 0, len(res.Attempts))
		for _, at := range res.Attempts {
			result := "fail"
			switch {
			case at.Skipped:
				result = "skipped"
			case at.Passed:
				result = "pass"
			}
			rows = append(rows, []string{at.Strategy, fmt.Sprintf("%.3f", at.Score), result})
		}
		if len(rows) > 0 {
			lipgloss.Fprintln(out, components.Table([]string{"Strategy", "Score", "Result"}, rows))
		}
		if len(res.Feedback) > 0 {
			lipgloss.Fprintln(out, components.Feedback(res.Feedback))
		}
		return nil
	},
}

func init() {
	gradeCmd.Flags().Bool("json", false, "Print the verdict as JSON")
}
