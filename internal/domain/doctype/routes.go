package doctype

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, guard gin.HandlerFunc) {
	types := r.Group("/document-types")
	{
		types.GET("", h.List)
		types.POST("", guard, h.Create)
		types.PUT("/:id", guard, h.Rename)
		types.DELETE("/:id", guard, h.Delete)
	}
}
