package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/spacedrep"
	"github.com/abhisek/clipvocab/internal/ui/components"
	"github.com/abhisek/clipvocab/internal/ui/theme"
	"github.com/abhisek/clipvocab/internal/vocab"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review due words by typing back the sentence",
	Long: "Review due words. Each prompt shows the word, its translation and the sentence\n" +
		"with the word blanked out; type the whole sentence. End the session with Ctrl-D.",
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
		out := cmd.OutOrStdout()
		if len(due) == 0 {
			fmt.Fprintln(out, "Nothing to review right now.")
			return nil
		}

		sum, err := runReview(cmd.Context(), a.svc, due, cmd.InOrStdin(), out, time.Now)
		if err != nil {
			return err
		}
		lipgloss.Fprintln(out)
		lipgloss.Fprintln(out, theme.Title.Render(fmt.Sprintf("Reviewed %d of %d", sum.Reviewed, len(due))))
		if sum.Reviewed > 0 {
			lipgloss.Fprintln(out, components.Meter("Correct", sum.Correct, sum.Reviewed, 40))
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().IntP("limit", "n", 20, "Maximum number of words in the session (0 = all)")
}

type reviewSummary struct {
	Reviewed int
	Correct  int
}

// runReview prompts for each due entry in turn, reading one answer per line
// from in. It stops early when in is exhausted.
func runReview(ctx context.Context, svc *vocab.Service, due []vocab.DueEntry, in io.Reader, out io.Writer, now func() time.Time) (reviewSummary, error) {
	var sum reviewSummary
	scanner := bufio.NewScanner(in)

	for i, d := range due {
		lipgloss.Fprintln(out)
		lipgloss.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("[%d/%d]", i+1, len(due)))+" "+
			theme.Emphasis.Render(d.Word)+" "+theme.Stage(d.Review.Stage).Render("("+d.StageLabel()+")"))
		if d.Translation != "" {
			lipgloss.Fprintln(out, theme.Subtitle.Render("  meaning: "+d.Translation))
		}
		if d.VideoTitle != "" {
			lipgloss.Fprintln(out, theme.Hint.Render("  from: "+d.VideoTitle))
		}
		if d.Sentence != "" {
			lipgloss.Fprintln(out, theme.Body.Render("  "+maskWord(d.Sentence, d.Word)))
		}
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}
		res, err := svc.Submit(ctx, vocab.Submission{EntryID: d.ID, Answer: scanner.Text()}, now())
		if err != nil {
			return sum, err
		}
		sum.Reviewed++
		if res.Correct {
			sum.Correct++
		}
		printResult(out, res)
	}
	return sum, scanner.Err()
}

func printResult(out io.Writer, res *vocab.Result) {
	line := components.Verdict(res.Correct)
	if res.Verdict.Strategy != "" {
		line += theme.Hint.Render(fmt.Sprintf("  %s %.2f", res.Verdict.Strategy, res.Verdict.Score))
	}
	lipgloss.Fprintln(out, "  "+line)
	if len(res.Feedback) > 0 {
		lipgloss.Fprintln(out, "  "+components.Feedback(res.Feedback))
		lipgloss.Fprintln(out, theme.Subtitle.Render("  answer: "+res.Reference))
	}
	next := "mastered"
	if res.Stage != spacedrep.StageMastered {
		next = "next review " + res.ScheduledAt.Local().Format(dateFormat)
	}
	if res.Late {
		next += ", reviewed late"
	}
	lipgloss.Fprintln(out, theme.Hint.Render(fmt.Sprintf("  %s → %s, %s", spacedrep.StageLabel(res.PreviousStage), res.StageLabel, next)))
}

// maskWord blanks every occurrence of word in sentence, keeping spaces
// between the words of a phrase.
func maskWord(sentence, word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return sentence
	}
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return sentence
	}
	return re.ReplaceAllStringFunc(sentence, func(m string) string {
		var b strings.Builder
		for _, r := range m {
			if r == ' ' {
				b.WriteRune(' ')
			} else {
				b.WriteRune('_')
			}
		}
		return b.String()
	})
}
