package employee

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the employee endpoints. Writes pass through guard.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard gin.HandlerFunc) {
	employees := r.Group("/employees")
	{
		employees.GET("", h.List)
		employees.GET("/:id", h.Get)
		employees.POST("", guard, h.Create)
		employees.PUT("/:id", guard, h.Update)
		employees.DELETE("/:id", guard, h.Deactivate)
	}
}
