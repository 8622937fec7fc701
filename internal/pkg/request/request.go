// Package request holds the binding helpers shared by the HTTP handlers.
package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atrium/internal/pkg/response"
	"atrium/internal/pkg/validator"
)

// BindJSON decodes the body into req and runs its validate tags. On failure
// the error response is already written and false is returned.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", errs)
		return false
	}
	return true
}

// ParamID reads a positive integer path parameter.
func ParamID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}
