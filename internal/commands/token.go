package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCommand() *cobra.Command {
	var (
		subject  string
		role     string
		memberID string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadRuntime()
			if err != nil {
				return err
			}
			if err := validateTokenClaims(domain.Role(role), memberID); err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWTExpiryDuration
			}

			token, err := utils.GenerateJWT(subject, role, memberID, cfg.JWTSecret, ttl, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "actor ID recorded on every write (required)")
	_ = cmd.MarkFlagRequired("subject")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStaff), "staff or member")
	cmd.Flags().StringVar(&memberID, "member-id", "", "member the token acts for (member role only)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_EXPIRY_DURATION)")

	return cmd
}

func validateTokenClaims(role domain.Role, memberID string) error {
	switch role {
	case domain.RoleStaff:
		if memberID != "" {
			return fmt.Errorf("--member-id is only valid for member tokens")
		}
	case domain.RoleMember:
		if memberID == "" {
			return fmt.Errorf("member tokens need --member-id")
		}
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	return nil
}
