package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/active", h.active)
	rg.POST("", h.add)
	rg.POST("/validate-path", h.validatePath)
	rg.POST("/:id/activate", h.activate)
	rg.DELETE("/:id", h.remove)
}
