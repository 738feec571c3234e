// Package token mints bearer tokens signed with the configured secret. Production
// tokens come from the identity provider; this exists for local development and
// smoke tests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"solarops/internal/infrastructure/auth"
	"solarops/internal/interfaces/cli/bootstrap"
	"solarops/internal/shared/constants"
)

var (
	env        string
	configPath string
	subject    string
	roles      []string
	ttl        time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		Long:  `Issue a JWT for the given subject and roles, signed with auth.jwt_secret. Refused in production.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "Token subject, the user or technician ID (required)")
	cmd.Flags().StringSliceVarP(&roles, "role", "r", []string{constants.RoleAdmin}, "Roles to grant (admin, dispatcher, technician)")
	cmd.Flags().DurationVar(&ttl, "ttl", 8*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, _, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	if cfg.Server.Mode == "release" {
		return errors.New("token issuing is disabled in production")
	}

	for _, role := range roles {
		switch role {
		case constants.RoleAdmin, constants.RoleDispatcher, constants.RoleTechnician:
		default:
			return fmt.Errorf("unknown role %q", role)
		}
	}

	token, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer).Generate(subject, roles, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Println(token)
	return nil
}
