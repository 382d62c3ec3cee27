package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *PeakRateHandler, authMiddleware gin.HandlerFunc) {
	// Guests see effective prices via the unit calendar; the raw rate
	// list is a management surface.
	g.GET("/units/:id/peak-rates", authMiddleware, h.List)
	g.POST("/units/:id/peak-rates", authMiddleware, h.Create)
	g.PATCH("/peak-rates/:id", authMiddleware, h.Update)
	g.DELETE("/peak-rates/:id", authMiddleware, h.Delete)
}
