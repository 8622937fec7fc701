package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError writes the status and message carried by a domain error.
// Anything else is reported as a generic internal error and attached to the
// gin context so the error logger picks it up.
func FromError(c *gin.Context, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		Error(c, httpErr.StatusCode(), httpErr.Code(), httpErr.Error())
		return
	}
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
