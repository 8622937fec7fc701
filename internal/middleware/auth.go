package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"atrium/internal/domain"
	"atrium/internal/pkg/jwt"
	"atrium/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores user id and role on the context.
// Websocket clients cannot send headers, so a ?token= query value is accepted too.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code, msg := extractToken(c)
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) (token, code, msg string) {
	h := c.GetHeader("Authorization")
	if h == "" {
		if q := strings.TrimSpace(c.Query("token")); q != "" {
			return q, "", ""
		}
		return "", "AUTH_HEADER_MISSING", "Missing Authorization header"
	}
	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT", "Invalid Authorization header"
	}
	token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", "INVALID_AUTH_FORMAT", "Empty token"
	}
	return token, "", ""
}

// SetActor stores an already authenticated caller on the context.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(ctxUserID, actor.UserID)
	c.Set(ctxRole, actor.Role)
}

// ActorFrom returns the caller placed on the context by JWTAuth.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return domain.Actor{}, false
	}
	userID, ok := id.(int64)
	if !ok || userID == 0 {
		return domain.Actor{}, false
	}
	role, _ := c.Get(ctxRole)
	r, _ := role.(domain.Role)
	return domain.Actor{UserID: userID, Role: r}, true
}
