package dto

// AlbumsPage is the body of GET /api/albums-with-links.
//
// Albums is nil when the field is missing or null, which clients treat as a
// malformed response. An empty page decodes to a non-nil empty slice.
type AlbumsPage struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Count   int         `json:"count"`
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
	HasMore bool        `json:"has_more"`
	Albums  []JSONAlbum `json:"albums"`
}

// SearchResult is the body of GET /api/search.
type SearchResult struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Count   int         `json:"count"`
	Query   string      `json:"query"`
	Albums  []JSONAlbum `json:"albums"`
}

// AlbumDetail is the body of GET /api/album/:id.
type AlbumDetail struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error,omitempty"`
	Album     *JSONAlbum     `json:"album,omitempty"`
	Platforms []JSONPlatform `json:"platforms"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// Health is the body of GET /health.
type Health struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewError builds a failed response.
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}
