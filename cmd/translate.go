package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <text>",
	Short: "Translate a word or sentence with the configured LLM provider",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.translator == nil {
			return errors.New("translation needs an LLM provider: set CLIPVOCAB_LLM_PROVIDER and its API key")
		}

		text := strings.Join(args, " ")
		got, err := a.translator.Translate(cmd.Context(), text, a.cfg.Translate.Target)
		if err != nil {
			return fmt.Errorf("translate: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), got)
		return nil
	},
}
