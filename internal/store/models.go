package store

import (
	"time"

	"github.com/handiism/albumlinks/internal/catalog/dto"
	"github.com/handiism/albumlinks/internal/model"
)

// AlbumLink is one row of album_platform_links.
type AlbumLink struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	ArtistKo      string    `gorm:"column:artist_ko;not null;uniqueIndex:idx_album_platform,priority:1" json:"artist_ko"`
	ArtistEn      string    `gorm:"column:artist_en" json:"artist_en"`
	AlbumKo       string    `gorm:"column:album_ko;not null;uniqueIndex:idx_album_platform,priority:2" json:"album_ko"`
	AlbumEn       string    `gorm:"column:album_en" json:"album_en"`
	AlbumCoverURL string    `gorm:"column:album_cover_url" json:"album_cover_url"`
	ReleaseDate   string    `gorm:"column:release_date;index" json:"release_date"`
	PlatformType  string    `gorm:"column:platform_type;uniqueIndex:idx_album_platform,priority:3" json:"platform_type"`
	PlatformID    string    `gorm:"column:platform_id" json:"platform_id"`
	PlatformCode  string    `gorm:"column:platform_code" json:"platform_code"`
	PlatformName  string    `gorm:"column:platform_name;uniqueIndex:idx_album_platform,priority:4" json:"platform_name"`
	PlatformURL   string    `gorm:"column:platform_url" json:"platform_url"`
	Found         bool      `gorm:"column:found" json:"found"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
}

// TableName keeps the table name used by the collectors.
func (AlbumLink) TableName() string {
	return "album_platform_links"
}

// Summary returns the album part of the row.
func (l *AlbumLink) Summary() model.AlbumSummary {
	releaseDate, _ := dto.ParseReleaseDate(l.ReleaseDate)
	return model.AlbumSummary{
		Artist:      l.ArtistKo,
		Title:       l.AlbumKo,
		CoverURL:    l.AlbumCoverURL,
		ArtistEn:    l.ArtistEn,
		TitleEn:     l.AlbumEn,
		ReleaseDate: releaseDate,
	}
}

// Platform returns the platform part of the row.
func (l *AlbumLink) Platform() model.PlatformLink {
	return model.PlatformLink{
		Type:       l.PlatformType,
		Name:       l.PlatformName,
		PlatformID: l.PlatformID,
		Code:       l.PlatformCode,
		URL:        l.PlatformURL,
		Found:      l.Found,
	}
}

// albumRow is one album of a listing or search query.
type albumRow struct {
	ArtistKo      string `gorm:"column:artist_ko"`
	ArtistEn      string `gorm:"column:artist_en"`
	AlbumKo       string `gorm:"column:album_ko"`
	AlbumEn       string `gorm:"column:album_en"`
	AlbumCoverURL string `gorm:"column:album_cover_url"`
	ReleaseDate   string `gorm:"column:release_date"`
}

func (r *albumRow) summary() model.AlbumSummary {
	l := AlbumLink{
		ArtistKo:      r.ArtistKo,
		ArtistEn:      r.ArtistEn,
		AlbumKo:       r.AlbumKo,
		AlbumEn:       r.AlbumEn,
		AlbumCoverURL: r.AlbumCoverURL,
		ReleaseDate:   r.ReleaseDate,
	}
	return l.Summary()
}
