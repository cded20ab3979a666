package main

import (
	"participium/config"
	"participium/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "participium",
		Short:         "Citizen report lifecycle service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newTokenCmd())
	return cmd
}

// bootstrap loads configuration and the logger shared by every subcommand.
func bootstrap() (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
