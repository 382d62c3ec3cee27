package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *UnitHandler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/units")

	// Public reads: guests browse units without an account.
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	group.POST("", authMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, h.Update)
	group.DELETE("/:id", authMiddleware, h.Delete)
}
