package cmd

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/ui/theme"
	"github.com/abhisek/clipvocab/internal/vocab"
)

var captureCmd = &cobra.Command{
	Use:   "capture <word or phrase>",
	Short: "Save a word together with the sentence it was heard in",
	Long: "Save a word or phrase for review. When --video is given and no sentence is,\n" +
		"the sentence is looked up in the video's transcript.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		in := vocab.CaptureInput{Word: strings.Join(args, " ")}
		in.Sentence, _ = cmd.Flags().GetString("sentence")
		in.Translation, _ = cmd.Flags().GetString("translation")
		in.VideoID, _ = cmd.Flags().GetString("video")

		e, err := a.svc.Capture(cmd.Context(), in, time.Now())
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd, e)
		}

		out := cmd.OutOrStdout()
		lipgloss.Fprintln(out, theme.Title.Render("Captured ")+theme.Emphasis.Render(e.Word))
		if e.Sentence != "" {
			lipgloss.Fprintln(out, theme.Body.Render("  "+e.Sentence))
		}
		if e.Translation != "" {
			lipgloss.Fprintln(out, theme.Subtitle.Render("  "+e.Translation))
		}
		if e.VideoTitle != "" {
			lipgloss.Fprintln(out, theme.Hint.Render("  from "+e.VideoTitle))
		}
		lipgloss.Fprintln(out, theme.Hint.Render(fmt.Sprintf("  id %s, first review %s", e.ID, e.Review.ScheduledAt.Local().Format(dateFormat))))
		return nil
	},
}

func init() {
	captureCmd.Flags().StringP("sentence", "s", "", "Sentence the word was heard in")
	captureCmd.Flags().StringP("translation", "t", "", "Translation (skips automatic translation)")
	captureCmd.Flags().StringP("video", "v", "", "YouTube video ID or URL")
	captureCmd.Flags().Bool("json", false, "Print the entry as JSON")
}
