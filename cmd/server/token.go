package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cybersoft/talentmatch/pkg/config"
	"github.com/cybersoft/talentmatch/pkg/security/jwt"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

// tokenCmd выпускает JWT для операторов и сервисов, вызывающих API.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the protected routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Read()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if cfg.JWT.Secret == "" {
			return errors.New("JWT_SECRET is not set")
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = time.Duration(cfg.JWT.TTLMinutes) * time.Minute
		}
		token, err := jwt.NewGenerator(cfg.JWT.Secret, cfg.JWT.Issuer, ttl).Generate(tokenSubject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "token subject, e.g. the calling service name")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (default JWT_TTL_MINUTES)")
	_ = tokenCmd.MarkFlagRequired("subject")
}
