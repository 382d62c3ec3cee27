package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers user and auth routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	users := g.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/me", authMiddleware, h.Me)
	}
}
