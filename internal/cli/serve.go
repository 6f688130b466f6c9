package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/slug/internal/server"
	"github.com/dmitrymomot/slug/pkg/logger"
)

func newServeCmd(a *app) *cobra.Command {
	cfg := a.cfg.HTTP
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the slug HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := logger.New(a.streams.Err, a.cfg.Log, server.RequestIDExtractor)
			if err != nil {
				return err
			}
			store, err := a.newStore(l)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(store, cfg,
				server.WithLogger(l),
				server.WithWorkers(a.flags.workers),
			)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().IntVar(&cfg.MaxBatch, "max-batch", cfg.MaxBatch, "maximum texts per batch request")
	return cmd
}
