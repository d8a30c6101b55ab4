package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/handiism/albumlinks/internal/catalog/dto"
	"github.com/handiism/albumlinks/internal/model"
	"github.com/handiism/albumlinks/internal/store"
)

const (
	defaultPage  = 1
	defaultLimit = 50
	maxLimit     = 100
)

// ListAlbums handles GET /api/albums-with-links.
func ListAlbums(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := intQuery(c, "page", defaultPage)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
			return
		}
		limit, err := intQuery(c, "limit", defaultLimit)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewError(err.Error()))
			return
		}
		page = max(page, 1)
		limit = min(max(limit, 1), maxLimit)

		albums, total, err := deps.Store.ListAlbums(c.Request.Context(), page, limit)
		if err != nil {
			serverError(c, deps, "list albums", err)
			return
		}

		offset := (page - 1) * limit
		c.JSON(http.StatusOK, dto.AlbumsPage{
			Success: true,
			Count:   len(albums),
			Total:   total,
			Page:    page,
			Limit:   limit,
			HasMore: offset+len(albums) < total,
			Albums:  toJSON(albums),
		})
	}
}

// Search handles GET /api/search.
func Search(deps *Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusBadRequest, dto.NewError("search query is required"))
			return
		}

		albums, err := deps.Store.Search(c.Request.Context(), query)
		if err != nil {
			serverError(c, deps, "search", err)
			return
		}

		c.JSON(http.StatusOK, dto.SearchResult{
			Success: true,
			Count:   len(albums),
			Query:   query,
			Albums:  toJSON(albums),
		})
	}
}

// AlbumDetail handles GET {prefix}{id}. The id is read from the escaped
// path so that names containing "/" or "%" decode exactly once.
func AlbumDetail(deps *Dependencies, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimPrefix(c.Request.URL.EscapedPath(), prefix)

		artist, album, err := model.ParseAlbumID(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewError("invalid album id"))
			return
		}

		detail, err := deps.Store.GetAlbum(c.Request.Context(), artist, album)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.NewError("album not found"))
			return
		}
		if err != nil {
			serverError(c, deps, "get album", err)
			return
		}

		summary := dto.FromSummary(detail.Album)
		resp := dto.AlbumDetail{
			Success:   true,
			Album:     &summary,
			Platforms: make([]dto.JSONPlatform, 0, len(detail.Platforms)),
		}
		for _, p := range detail.Platforms {
			resp.Platforms = append(resp.Platforms, dto.FromPlatformLink(p))
		}
		if !detail.UpdatedAt.IsZero() {
			resp.UpdatedAt = detail.UpdatedAt.UTC().Format(time.RFC3339)
		}

		c.JSON(http.StatusOK, resp)
	}
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

func toJSON(albums []model.AlbumSummary) []dto.JSONAlbum {
	out := make([]dto.JSONAlbum, 0, len(albums))
	for _, a := range albums {
		out = append(out, dto.FromSummary(a))
	}
	return out
}

func serverError(c *gin.Context, deps *Dependencies, op string, err error) {
	deps.Logger.Error("request failed",
		slog.String("op", op),
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.Any("error", err))
	c.JSON(http.StatusInternalServerError, dto.NewError(err.Error()))
}
