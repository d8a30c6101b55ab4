package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/handiism/albumlinks/internal/catalog/dto"
	albumhttp "github.com/handiism/albumlinks/internal/http"
	"github.com/handiism/albumlinks/internal/model"
)

// Client fetches albums from the backend.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *albumhttp.Client
	logger  *slog.Logger
}

// NewClient creates a catalog client for the backend at baseURL
// (e.g. "http://localhost:5002").
func NewClient(baseURL string, httpClient *albumhttp.Client, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}

	if httpClient == nil {
		httpClient = albumhttp.NewClient(albumhttp.Config{})
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{baseURL: u.String(), http: httpClient, logger: logger}, nil
}

// FetchPage fetches one page of the album listing.
//
// Page numbers start at 1. The returned page always has a non-nil Albums
// slice; an empty slice with HasMore false is the end of the listing.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*model.AlbumPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	op := "albums page " + strconv.Itoa(page)
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var body dto.AlbumsPage
	if err := c.get(ctx, op, "/api/albums-with-links", q, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, &Error{Kind: ErrMalformed, Op: op, Message: body.Error}
	}
	if body.Albums == nil {
		return nil, &Error{Kind: ErrMalformed, Op: op, Err: errors.New("missing albums")}
	}

	c.logger.Debug("fetched albums page",
		slog.Int("page", page),
		slog.Int("count", len(body.Albums)),
		slog.Bool("has_more", body.HasMore))

	return &model.AlbumPage{
		Albums:  dto.Summaries(body.Albums),
		Page:    page,
		Limit:   limit,
		Total:   body.Total,
		HasMore: body.HasMore,
	}, nil
}

// Search returns every album whose artist or title matches query.
//
// An empty result is returned as an empty, non-nil slice.
func (c *Client) Search(ctx context.Context, query string) ([]model.AlbumSummary, error) {
	query = strings.TrimSpace(query)
	op := "search " + strconv.Quote(query)

	q := url.Values{}
	q.Set("q", query)

	var body dto.SearchResult
	if err := c.get(ctx, op, "/api/search", q, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, &Error{Kind: ErrMalformed, Op: op, Message: body.Error}
	}
	if body.Albums == nil {
		return nil, &Error{Kind: ErrMalformed, Op: op, Err: errors.New("missing albums")}
	}

	c.logger.Debug("search done", slog.String("query", query), slog.Int("count", len(body.Albums)))
	return dto.Summaries(body.Albums), nil
}

// Album fetches an album with its platform links. id is the composite
// identifier returned by model.AlbumSummary.ID.
func (c *Client) Album(ctx context.Context, id string) (*model.AlbumDetail, error) {
	op := "album " + id

	// id is already percent-encoded; keep it as the raw path segment.
	path := "/api/album/" + id

	var body dto.AlbumDetail
	if err := c.get(ctx, op, path, nil, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, &Error{Kind: ErrMalformed, Op: op, Message: body.Error}
	}
	if body.Album == nil {
		return nil, &Error{Kind: ErrMalformed, Op: op, Err: errors.New("missing album")}
	}

	detail := &model.AlbumDetail{
		Album:     body.Album.ToSummary(),
		Platforms: make([]model.PlatformLink, 0, len(body.Platforms)),
	}
	for i := range body.Platforms {
		detail.Platforms = append(detail.Platforms, body.Platforms[i].ToPlatformLink())
	}
	if body.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, body.UpdatedAt); err == nil {
			detail.UpdatedAt = t
		}
	}

	return detail, nil
}

// Health reports the backend status.
func (c *Client) Health(ctx context.Context) (*dto.Health, error) {
	var body dto.Health
	if err := c.get(ctx, "health", "/health", nil, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// get performs the request and maps transport, status and decode failures
// onto the package's error kinds.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, v any) error {
	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	err := c.http.GetJSON(ctx, rawURL, v)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return &Error{Kind: ErrNetwork, Op: op, Err: err}
	}

	var statusErr *albumhttp.StatusError
	var decodeErr *albumhttp.DecodeError
	switch {
	case errors.As(err, &statusErr):
		msg := serverMessage(statusErr.Body)
		if statusErr.Code == http.StatusNotFound && strings.HasPrefix(path, "/api/album/") {
			return &Error{Kind: ErrNotFound, Op: op, Message: msg, Err: err}
		}
		c.logger.Warn("backend returned error status",
			slog.String("op", op),
			slog.Int("status", statusErr.Code),
			slog.String("error", msg))
		return &Error{Kind: ErrNetwork, Op: op, Message: msg, Err: err}
	case errors.As(err, &decodeErr):
		c.logger.Warn("undecodable backend response", slog.String("op", op), slog.Any("error", err))
		return &Error{Kind: ErrMalformed, Op: op, Err: err}
	default:
		c.logger.Warn("backend unreachable", slog.String("op", op), slog.Any("error", err))
		return &Error{Kind: ErrNetwork, Op: op, Err: err}
	}
}

// serverMessage extracts the "error" field of a failed response body.
func serverMessage(body []byte) string {
	var resp dto.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.Error
}
