// Package http provides the HTTP client used to talk to the albumlinks
// backend and to fetch cover art.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Client-side request pacing with a token bucket
//   - JSON decoding of API responses
//   - Typed errors for non-2xx responses
//
// # Basic Usage
//
//	client := http.NewClient(http.Config{Timeout: 15 * time.Second, RateLimit: 5})
//
//	var page dto.AlbumsPage
//	err := client.GetJSON(ctx, "http://localhost:5002/api/albums-with-links?page=1", &page)
//
//	cover, err := client.DownloadBytes(ctx, album.CoverURL)
//
// # Errors
//
// Transport failures are returned as-is. Responses outside the 2xx range are
// returned as *StatusError, which keeps the body so callers can surface the
// server's own error message:
//
//	var se *http.StatusError
//	if errors.As(err, &se) {
//	    fmt.Println(se.Code, string(se.Body))
//	}
package http
