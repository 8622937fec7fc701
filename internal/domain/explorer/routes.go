package explorer

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the explorer under an authenticated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	explorer := r.Group("/employees/:id/explorer")
	{
		explorer.GET("", h.List)
		explorer.POST("/folders", h.CreateFolder)
		explorer.PUT("/items/:itemId", h.Rename)
		explorer.DELETE("/items/:itemId", h.Delete)
		explorer.POST("/files", h.Upload)
		explorer.GET("/files/:itemId/download", h.Download)
		explorer.POST("/copy", h.Copy) // moves; the name is kept for existing clients
	}
}
