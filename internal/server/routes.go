package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/handiism/albumlinks/internal/catalog/dto"
)

// RegisterRoutes registers all routes. limit is applied to /api.
func RegisterRoutes(engine *gin.Engine, deps *Dependencies, limit gin.HandlerFunc) {
	engine.GET("/health", Health(deps))
	engine.GET("/album/*id", AlbumDetail(deps, "/album/"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewError("not found"))
	})

	api := engine.Group("/api")
	api.Use(limit)
	api.GET("/albums-with-links", ListAlbums(deps))
	api.GET("/search", Search(deps))
	api.GET("/album/*id", AlbumDetail(deps, "/api/album/"))
}
