package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain"
	"atrium/internal/pkg/response"
)

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !allowed[actor.Role] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOrHR guards catalog and employee writes.
func AdminOrHR() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleHR)
}
