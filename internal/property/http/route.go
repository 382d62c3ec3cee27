package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *PropertyHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/properties")

	// Public reads
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)
}
