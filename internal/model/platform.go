package model

import "time"

// PlatformLink is one place an album can be found: a streaming service, a
// store or a download site.
//
// The backend stores one row per (artist, album, platform). Rows that were
// searched for but not found are kept with Found set to false so the view can
// show "not available" instead of hiding the platform.
type PlatformLink struct {
	// Type groups platforms, e.g. "domestic" or "global".
	Type string

	// Name is the display name, e.g. "Melon" or "Spotify".
	Name string

	// PlatformID and Code are the platform-side identifiers, if known.
	PlatformID string
	Code       string

	// URL links to the album on the platform.
	URL string

	// Found is false when the album is not available on the platform.
	Found bool
}

// AlbumDetail is an album together with its platform links, ordered by
// platform type then name.
type AlbumDetail struct {
	Album     AlbumSummary
	Platforms []PlatformLink
	UpdatedAt time.Time
}

// AvailableLinks returns only the platforms where the album was found.
func (d *AlbumDetail) AvailableLinks() []PlatformLink {
	links := make([]PlatformLink, 0, len(d.Platforms))
	for _, p := range d.Platforms {
		if p.Found && p.URL != "" {
			links = append(links, p)
		}
	}
	return links
}
