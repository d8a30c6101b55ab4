package dto

import (
	"strings"
	"time"

	"github.com/handiism/albumlinks/internal/model"
)

// JSONAlbum is one album as served by the listing, search and detail
// endpoints.
type JSONAlbum struct {
	ArtistKo    string       `json:"artist_ko"`
	AlbumKo     string       `json:"album_ko"`
	CoverURL    string       `json:"album_cover_url"`
	ArtistEn    string       `json:"artist_en"`
	AlbumEn     string       `json:"album_en"`
	ReleaseDate *ReleaseDate `json:"release_date"`
	ViewCount   *int64       `json:"view_count,omitempty"`
	LikeCount   *int64       `json:"like_count,omitempty"`
}

// ToSummary converts JSONAlbum to a model.AlbumSummary.
func (ja *JSONAlbum) ToSummary() model.AlbumSummary {
	var releaseDate time.Time
	if ja.ReleaseDate != nil {
		releaseDate = ja.ReleaseDate.Time
	}

	return model.AlbumSummary{
		Artist:      ja.ArtistKo,
		Title:       ja.AlbumKo,
		CoverURL:    strings.TrimSpace(ja.CoverURL),
		ArtistEn:    ja.ArtistEn,
		TitleEn:     ja.AlbumEn,
		ReleaseDate: releaseDate,
		ViewCount:   ja.ViewCount,
		LikeCount:   ja.LikeCount,
	}
}

// FromSummary converts a model.AlbumSummary to its wire form.
func FromSummary(a model.AlbumSummary) JSONAlbum {
	ja := JSONAlbum{
		ArtistKo:  a.Artist,
		AlbumKo:   a.Title,
		CoverURL:  a.CoverURL,
		ArtistEn:  a.ArtistEn,
		AlbumEn:   a.TitleEn,
		ViewCount: a.ViewCount,
		LikeCount: a.LikeCount,
	}
	if !a.ReleaseDate.IsZero() {
		ja.ReleaseDate = &ReleaseDate{Time: a.ReleaseDate}
	}
	return ja
}

// Summaries converts a slice of wire albums.
func Summaries(in []JSONAlbum) []model.AlbumSummary {
	out := make([]model.AlbumSummary, 0, len(in))
	for i := range in {
		out = append(out, in[i].ToSummary())
	}
	return out
}

// JSONPlatform is one platform link of the detail endpoint.
type JSONPlatform struct {
	Type       string `json:"platform_type"`
	Name       string `json:"platform_name"`
	PlatformID string `json:"platform_id"`
	Code       string `json:"platform_code"`
	URL        string `json:"platform_url"`
	Found      bool   `json:"found"`
}

// ToPlatformLink converts JSONPlatform to a model.PlatformLink.
func (jp *JSONPlatform) ToPlatformLink() model.PlatformLink {
	return model.PlatformLink{
		Type:       jp.Type,
		Name:       jp.Name,
		PlatformID: jp.PlatformID,
		Code:       jp.Code,
		URL:        jp.URL,
		Found:      jp.Found,
	}
}

// FromPlatformLink converts a model.PlatformLink to its wire form.
func FromPlatformLink(p model.PlatformLink) JSONPlatform {
	return JSONPlatform{
		Type:       p.Type,
		Name:       p.Name,
		PlatformID: p.PlatformID,
		Code:       p.Code,
		URL:        p.URL,
		Found:      p.Found,
	}
}
