package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solarops/internal/domain/permission"
	"solarops/internal/shared/constants"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

type PermissionMiddleware struct {
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer permission.PermissionEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePermission admits the request when any of the caller's roles holds
// action on resource. It must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource permission.Resource, action permission.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(constants.ContextKeyUserID)
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}
		roles := c.GetStringSlice(constants.ContextKeyUserRoles)

		allowed, err := m.enforcer.Enforce(roles, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "roles", roles, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
