package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the card endpoints onto the engine.
func RegisterRoutes(r *gin.Engine, h *Handler, corsEnabled bool) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method not allowed"})
	})
	if corsEnabled {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodPost, http.MethodOptions},
			AllowHeaders:    []string{"Content-Type"},
		}))
	}

	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/card", h.createCard)
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
