// path: cmd/token.go
package cmd

import (
	"fmt"
	"time"

	"github.com/RodyMacay/biodiversity-monitoring/auth"
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		req  auth.TokenRequest
		role string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if req.Subject == "" {
				return fmt.Errorf("--sub is required")
			}
			if role != "" {
				r, ok := models.ParseRole(role)
				if !ok {
					return fmt.Errorf("unknown role %q (want one of %v)", role, models.Roles())
				}
				req.Role = r
			}
			req.Issuer = cfg.Auth.Issuer
			token, err := auth.IssueToken(cfg.Auth.JWTSecret, req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Subject, "sub", "", "subject (the user's identity-provider id)")
	f.StringVar(&req.Email, "email", "", "email claim")
	f.StringVar(&req.FirstName, "first-name", "", "given_name claim")
	f.StringVar(&req.LastName, "last-name", "", "family_name claim")
	f.StringVar(&role, "role", "", "role claim: RESEARCHER, ADMINISTRATOR or OBSERVER")
	f.DurationVar(&req.TTL, "ttl", 24*time.Hour, "token lifetime; 0 for the one-year maximum")
	return cmd
}
