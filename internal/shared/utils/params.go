package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"solarops/internal/shared/biztime"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/id"
)

// ParseSIDParam reads a prefixed ID from a URL path parameter and checks its prefix.
func ParseSIDParam(c *gin.Context, paramName, prefix, entityName string) (string, error) {
	sid := c.Param(paramName)
	if sid == "" {
		return "", errors.NewValidationError(entityName + " ID is required")
	}

	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(
			fmt.Sprintf("invalid %s ID format, expected %s_xxxxx", entityName, prefix),
		)
	}

	return sid, nil
}

// ParseDateQuery parses an optional YYYY-MM-DD query parameter.
func ParseDateQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(raw)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", key))
	}
	return &t, nil
}
