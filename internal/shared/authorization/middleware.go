// Package authorization holds coarse role gates for routes that sit outside
// the resource permission model.
package authorization

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"solarops/internal/shared/constants"
	"solarops/internal/shared/utils"
)

// RequireRole admits callers holding at least one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRoles := c.GetStringSlice(constants.ContextKeyUserRoles)
		for _, r := range roles {
			if slices.Contains(callerRoles, r) {
				c.Next()
				return
			}
		}
		utils.ErrorResponse(c, http.StatusForbidden, constants.ErrMsgForbidden)
		c.Abort()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(constants.RoleAdmin)
}
