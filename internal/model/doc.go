// Package model defines the core data structures used throughout
// albumlinks.
//
// # AlbumSummary
//
// AlbumSummary is what every list on the site shows: an artist, an album
// title and an optional cover. Its identity is the (artist, album) pair:
//
//	album := model.AlbumSummary{Artist: "아이유", Title: "Love poem"}
//	id, err := album.ID()     // "%EC%95%84%EC%9D%B4%EC%9C%A0%7C%7C%7CLove%20poem"
//	route := album.Route()    // "/album/" + id
//
// # Composite Identifier
//
// The identifier joins artist and album with "|||" and percent-encodes the
// result exactly the way JavaScript's encodeURIComponent does, so routes stay
// link compatible with the web front end:
//
//	id, _ := model.AlbumID("Artist", "Album")
//	artist, album, err := model.ParseAlbumID(id)
//
// Names that contain the delimiter cannot round-trip and are rejected with
// ErrReservedDelimiter.
//
// # Platform Links
//
// PlatformLink is one row of the backend's album_platform_links table: where a
// given album can be found on a streaming or download platform.
package model
