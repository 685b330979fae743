package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/shadowing-backend/internal/auth"
)

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		issuer  string
		learner string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development access token",
		Long:  "Mint an HS256 access token for local testing against a server started with the same secret and issuer.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(secret) < 32 {
				return errors.New("secret must be at least 32 characters")
			}
			learnerID := uuid.New()
			if learner != "" {
				id, err := uuid.Parse(learner)
				if err != nil {
					return fmt.Errorf("parse learner id: %w", err)
				}
				learnerID = id
			}

			token, err := auth.NewJWTManager(secret, issuer, ttl).GenerateAccessToken(learnerID)
			if err != nil {
				return err
			}
			slog.Info("token minted", "learner_id", learnerID.String(), "ttl", ttl)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&secret, "secret", "", "signing secret (AUTH_JWT_SECRET)")
	f.StringVar(&issuer, "issuer", "shadowing", "token issuer")
	f.StringVar(&learner, "learner", "", "learner UUID (random when empty)")
	f.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}
