package main

import (
	"context"

	"participium/internal/repository"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the configured backend and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			repo, err := repository.New(ctx, cfg.Repository.Backend, log, cfg)
			if err != nil {
				return err
			}
			// OnStart migrates before it reports ready.
			if err := repo.OnStart(ctx); err != nil {
				return err
			}
			log.Infow("migrations applied", "backend", cfg.Repository.Backend)
			return repo.OnStop(ctx)
		},
	}
}
