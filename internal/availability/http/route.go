package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *AvailabilityHandler, authMiddleware gin.HandlerFunc) {
	// Public read: guests check open dates before booking.
	g.GET("/units/:id/availability", h.Get)

	// === Authenticated Routes ===
	g.PUT("/units/:id/availability", authMiddleware, h.Write)
	g.PUT("/units/:id/availability/month", authMiddleware, h.WriteMonth)
}
