package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// IDDelimiter joins artist and album in the composite identifier.
const IDDelimiter = "|||"

var (
	// ErrReservedDelimiter is returned when an artist or album name contains
	// IDDelimiter, which would make the composite identifier ambiguous.
	ErrReservedDelimiter = errors.New("name contains reserved delimiter " + IDDelimiter)

	// ErrInvalidAlbumID is returned when a composite identifier does not decode
	// to exactly one artist and one album.
	ErrInvalidAlbumID = errors.New("invalid album id")
)

// AlbumSummary is the view model for an album card, carousel slide or
// ranking row.
//
// Only Artist and Title are required. ViewCount and LikeCount are nil until
// the backend starts reporting them; they are never made up client side.
type AlbumSummary struct {
	// Artist is the primary (Korean) artist name.
	Artist string

	// Title is the primary (Korean) album title.
	Title string

	// CoverURL is the cover art URL. Empty means no cover is known.
	CoverURL string

	// ArtistEn and TitleEn are the romanized names, if any.
	ArtistEn string
	TitleEn  string

	// ReleaseDate is the zero time when unknown.
	ReleaseDate time.Time

	ViewCount *int64
	LikeCount *int64
}

// HasCover returns true if the album has cover art to load.
func (a AlbumSummary) HasCover() bool {
	return a.CoverURL != ""
}

// ID returns the composite identifier of the album.
func (a AlbumSummary) ID() (string, error) {
	return AlbumID(a.Artist, a.Title)
}

// Route returns the detail page route "/album/{id}", or "" when the album
// has no valid identifier.
func (a AlbumSummary) Route() string {
	id, err := a.ID()
	if err != nil {
		return ""
	}
	return "/album/" + id
}

// DisplayTitle returns the title or a placeholder for untitled albums.
func (a AlbumSummary) DisplayTitle() string {
	if a.Title == "" {
		return "Untitled"
	}
	return a.Title
}

// DisplayArtist returns the artist or a placeholder.
func (a AlbumSummary) DisplayArtist() string {
	if a.Artist == "" {
		return "Unknown artist"
	}
	return a.Artist
}

// Key returns the identity pair as a single comparable value. Unlike ID it
// never fails, so it is safe to use as a map key.
func (a AlbumSummary) Key() [2]string {
	return [2]string{a.Artist, a.Title}
}

// AlbumPage is one decoded page of the paginated albums endpoint.
type AlbumPage struct {
	Albums  []AlbumSummary
	Page    int
	Limit   int
	Total   int
	HasMore bool
}

// AlbumID builds the composite identifier for an (artist, album) pair.
//
// The result is encodeURIComponent(artist + "|||" + album), byte for byte:
//
//	AlbumID("AC/DC", "Back in Black") // "AC%2FDC%7C%7C%7CBack%20in%20Black"
//
// Names that would make the delimiter ambiguous are rejected: either name
// containing "|||", an artist ending in "|" or an album starting with "|".
func AlbumID(artist, album string) (string, error) {
	if !splittable(artist, album) {
		return "", fmt.Errorf("album id for %q / %q: %w", artist, album, ErrReservedDelimiter)
	}
	return EncodeURIComponent(artist + IDDelimiter + album), nil
}

// splittable reports whether artist + IDDelimiter + album contains the
// delimiter only at len(artist).
func splittable(artist, album string) bool {
	return !strings.Contains(artist, IDDelimiter) &&
		!strings.Contains(album, IDDelimiter) &&
		!strings.HasSuffix(artist, "|") &&
		!strings.HasPrefix(album, "|")
}

// ParseAlbumID decodes a composite identifier back into artist and album.
func ParseAlbumID(id string) (artist, album string, err error) {
	decoded, err := url.PathUnescape(id)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidAlbumID, err)
	}

	parts := strings.Split(decoded, IDDelimiter)
	if len(parts) != 2 || !splittable(parts[0], parts[1]) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAlbumID, decoded)
	}

	return parts[0], parts[1], nil
}

// EncodeURIComponent percent-encodes s with the same unreserved set as
// JavaScript's encodeURIComponent: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// FormatCount shortens large counters for display: 1234 -> "1.2K",
// 2500000 -> "2.5M".
func FormatCount(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
