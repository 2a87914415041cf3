package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/clipvocab/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the vocabulary and review HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		opts := server.Options{
			Service: a.svc,
			DB:      a.store,
			Logger:  a.logger,
		}
		if a.translator != nil {
			opts.Translator = a.translator
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(opts).Run(ctx, a.cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides CLIPVOCAB_SERVER_ADDR)")
}
