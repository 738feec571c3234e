package permission

import (
	"fmt"

	"solarops/internal/domain/permission"
	"solarops/internal/shared/logger"
)

// InitDefaultPermissions installs the built-in role matrix. Existing rules are
// left alone, so it runs on every start.
func InitDefaultPermissions(enforcer permission.PermissionEnforcer, log logger.Interface) error {
	policies := permission.DefaultPolicies()
	for _, p := range policies {
		if err := enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			log.Errorw("failed to add permission policy",
				"error", err,
				"role", p.Role,
				"resource", p.Resource,
				"action", p.Action)
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				p.Role, p.Resource, p.Action, err)
		}
	}

	log.Infow("permissions initialized successfully", "policies", len(policies))
	return nil
}
