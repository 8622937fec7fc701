package importantdoc

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	docs := r.Group("/employees/:id/important-documents")
	{
		docs.GET("", h.List)
		docs.POST("", h.Upload)
		docs.GET("/:docId/download", h.Download)
		docs.DELETE("/:docId", h.Delete)
	}
}
