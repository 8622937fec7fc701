package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atrium/internal/middleware"
	"atrium/internal/pkg/request"
	"atrium/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "credentials"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !request.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, code, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		response.Error(c, status, code, msg)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":      result.AccessToken,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

// GetMe godoc
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Router /users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	user, err := h.service.Me(c.Request.Context(), actor.UserID)
	if err != nil {
		status, code, msg := statusFor(err)
		response.Error(c, status, code, msg)
		return
	}
	response.Success(c, http.StatusOK, user)
}
