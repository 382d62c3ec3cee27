package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler, authMiddleware gin.HandlerFunc) {
	// Public reads: quoting and calendar browsing need no account.
	g.GET("/units/:id/quote", h.Quote)
	g.GET("/units/:id/calendar", h.Calendar)

	// === Authenticated Routes ===
	group := g.Group("/bookings", authMiddleware)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PATCH("/:id/cancel", h.Cancel)
}
