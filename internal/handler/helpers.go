package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/studytrack/studytrack-api/pkg/errors"
)

// parseID reads a numeric path parameter, mapping bad input to a validation error.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name+" parameter")
	}
	return id, nil
}
