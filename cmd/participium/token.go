package main

import (
	"fmt"
	"strings"
	"time"

	"participium/internal/entities"
	"participium/internal/transport/http/middleware"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID int64
		role   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			if userID <= 0 {
				return fmt.Errorf("--user-id must be positive")
			}
			if ttl <= 0 {
				ttl = cfg.Auth.TokenTTL
			}
			tok, err := middleware.IssueToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, userID,
				entities.ActorType(strings.ToUpper(role)), ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 0, "subject user id")
	cmd.Flags().StringVar(&role, "role", string(entities.ActorCitizen), "CITIZEN, MUNICIPALITY, EXTERNAL_MAINTAINER or ADMIN")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to auth.token_ttl)")
	return cmd
}
