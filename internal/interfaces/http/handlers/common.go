// Package handlers adapts HTTP requests to application use cases.
package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"solarops/internal/shared/biztime"
	"solarops/internal/shared/constants"
	"solarops/internal/shared/errors"
	"solarops/internal/shared/logger"
	"solarops/internal/shared/utils"
)

// bindJSON decodes the body into req, runs the validate tags and writes a 400
// on failure.
func bindJSON(c *gin.Context, req any, log logger.Interface) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnw("invalid request body", "path", c.FullPath(), "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError(constants.ErrMsgValidationFailed, err.Error()))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		log.Warnw("request validation failed", "path", c.FullPath(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return false
	}
	return true
}

// pathID reads a prefixed id path parameter and writes a 400 when it is malformed.
func pathID(c *gin.Context, param, prefix, entity string) (string, bool) {
	id, err := utils.ParseSIDParam(c, param, prefix, entity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return "", false
	}
	return id, true
}

func callerID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}

func callerRoles(c *gin.Context) []string {
	return c.GetStringSlice(constants.ContextKeyUserRoles)
}

// parseDate parses a YYYY-MM-DD request field in the business timezone.
func parseDate(field, value string) (time.Time, error) {
	t, err := biztime.ParseDate(value)
	if err != nil {
		return time.Time{}, errors.NewValidationError(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
