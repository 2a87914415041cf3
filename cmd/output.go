package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/vocab"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = "2006-01-02 15:04:05"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func nextReview(e *vocab.Entry) string {
	if e.Review.IsMastered() {
		return "-"
	}
	return e.Review.ScheduledAt.Local().Format(dateFormat)
}
