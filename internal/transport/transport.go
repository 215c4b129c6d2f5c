package transport

import (
	"net/http"
	"strings"

	"github.com/sakurairo-fans/anime-img-api/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(imageHandler *ImageHandler) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// CORS on every response so the Sakurairo theme can preload a second
	// cover image cross-origin and hit the cache on the next visit.
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "*")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if strings.Contains(c.Request.URL.Path, "favicon.ico") {
			c.String(http.StatusNotFound, "Not Found")
			c.Abort()
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	imageHandler.RegisterRoutes(api)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "anime-img-api",
		})
	})

	return router
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/v1/setu", h.RandomV1)
	router.GET("/v2/setu", h.RandomV2)
}
