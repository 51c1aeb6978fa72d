package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/auth"
)

func newTokenCmd(c *cli) *cobra.Command {
	var (
		userID string
		email  string
		hours  int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.Secret == "" {
				return errors.New("JWT_SECRET_KEY is not set")
			}
			if hours == 0 {
				hours = c.cfg.Auth.TokenHours
			}

			jm := auth.NewJWTManager(c.cfg.Auth.Secret, c.cfg.Auth.Issuer)
			token, err := jm.GenerateToken(userID, email, hours)
			if err != nil {
				return err
			}

			c.logger.Debug().Str("user", userID).Int("hours", hours).Msg("token issued")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id stored in the token")
	cmd.Flags().StringVar(&email, "email", "", "email stored in the token")
	cmd.Flags().IntVar(&hours, "hours", 0, "token lifetime in hours (default from config)")
	cmd.MarkFlagRequired("user")
	return cmd
}
