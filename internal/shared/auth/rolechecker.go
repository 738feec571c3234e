package auth

import (
	"slices"

	"solarops/internal/shared/constants"
)

// IsAdmin checks if the user has admin role
func IsAdmin(roles []string) bool {
	return HasRole(roles, constants.RoleAdmin)
}

// IsFieldOnly reports whether the caller is a technician without office roles.
// Field-only callers see their own visits.
func IsFieldOnly(roles []string) bool {
	return HasRole(roles, constants.RoleTechnician) &&
		!HasRole(roles, constants.RoleAdmin) &&
		!HasRole(roles, constants.RoleDispatcher)
}

// HasRole checks if the user has a specific role
func HasRole(roles []string, targetRole string) bool {
	return slices.Contains(roles, targetRole)
}
