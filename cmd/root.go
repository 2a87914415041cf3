package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "clipvocab",
	Short: "Capture words from videos and review them with spaced repetition",
	Long: "clipvocab keeps the words you hear in videos together with the sentence they\n" +
		"were spoken in, and schedules reviews where you type the sentence back.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("env-file", config.DefaultEnvFile, "Environment file loaded before CLIPVOCAB_* variables are read")
	pf.String("db", "", "Database path for sqlite or connection URL for postgres (overrides CLIPVOCAB_DB_DSN)")
	pf.String("db-driver", "", "Database driver: sqlite or postgres")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-format", "", "Log format: text or json")
	pf.String("provider", "", "LLM provider for translation: auto, none, anthropic, openai, gemini or openrouter")
	pf.Float64("threshold", 0, "Similarity threshold for accepting an answer (0-1)")
	pf.String("mode", "", "Grading mode: lenient or strict")
	pf.String("target", "", "Target language for translations")

	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
