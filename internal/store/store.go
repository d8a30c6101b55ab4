package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/handiism/albumlinks/internal/database"
	"github.com/handiism/albumlinks/internal/model"
)

// SearchLimit caps the number of search results.
const SearchLimit = 200

// ErrNotFound is returned when an album has no rows.
var ErrNotFound = errors.New("album not found")

const sqliteTimeLayout = "2006-01-02 15:04:05"

// visibleAlbum hides albums released after the given time. Dates SQLite
// cannot read are hidden as well.
const visibleAlbum = `(release_date IS NULL OR release_date = '' OR datetime(release_date) <= datetime(?))`

// latestPerAlbum picks the newest row of every album matching the filter.
const latestPerAlbum = `
SELECT artist_ko, artist_en, album_ko, album_en, album_cover_url, release_date, latest_created_at
FROM (
	SELECT artist_ko, artist_en, album_ko, album_en, album_cover_url, release_date,
		MAX(created_at) OVER (PARTITION BY artist_ko, album_ko) AS latest_created_at,
		ROW_NUMBER() OVER (PARTITION BY artist_ko, album_ko ORDER BY created_at DESC, id DESC) AS rn
	FROM album_platform_links
	WHERE %s
)
WHERE rn = 1
ORDER BY
	CASE WHEN album_cover_url IS NOT NULL AND album_cover_url != '' THEN 0 ELSE 1 END,
	release_date DESC,
	latest_created_at DESC,
	artist_ko, album_ko
LIMIT ? OFFSET ?`

// Store queries album platform links.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a Store on db.
func New(db *database.DB) *Store {
	return &Store{db: db.DB, now: time.Now}
}

// Migrate creates or updates the album_platform_links table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&AlbumLink{}); err != nil {
		return fmt.Errorf("migrate album links: %w", err)
	}
	return nil
}

// ListAlbums returns one page of released albums, albums with a cover first,
// then newest release first, and the total number of released albums.
func (s *Store) ListAlbums(ctx context.Context, page, limit int) ([]model.AlbumSummary, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	offset := (page - 1) * limit
	now := s.now().Format(sqliteTimeLayout)

	var total int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM (SELECT 1 FROM album_platform_links WHERE `+visibleAlbum+` GROUP BY artist_ko, album_ko)`,
		now,
	).Scan(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count albums: %w", err)
	}

	var rows []albumRow
	err = s.db.WithContext(ctx).Raw(fmt.Sprintf(latestPerAlbum, visibleAlbum), now, limit, offset).Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list albums: %w", err)
	}

	return summaries(rows), int(total), nil
}

// Search returns up to SearchLimit albums whose Korean or English artist or
// album name contains query, ignoring ASCII case.
func (s *Store) Search(ctx context.Context, query string) ([]model.AlbumSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.AlbumSummary{}, nil
	}

	pattern := "%" + escapeLike(query) + "%"
	filter := `artist_ko LIKE ? ESCAPE '\' OR artist_en LIKE ? ESCAPE '\' OR album_ko LIKE ? ESCAPE '\' OR album_en LIKE ? ESCAPE '\'`

	var rows []albumRow
	err := s.db.WithContext(ctx).Raw(
		fmt.Sprintf(latestPerAlbum, filter),
		pattern, pattern, pattern, pattern, SearchLimit, 0,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}

	return summaries(rows), nil
}

// GetAlbum returns an album with all of its platform links, ordered by
// platform type then name.
func (s *Store) GetAlbum(ctx context.Context, artist, album string) (*model.AlbumDetail, error) {
	var links []AlbumLink
	err := s.db.WithContext(ctx).
		Where("artist_ko = ? AND album_ko = ?", artist, album).
		Order("platform_type, platform_name").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}
	if len(links) == 0 {
		return nil, ErrNotFound
	}

	latest := &links[0]
	for i := range links {
		if links[i].CreatedAt.After(latest.CreatedAt) {
			latest = &links[i]
		}
	}

	detail := &model.AlbumDetail{
		Album:     latest.Summary(),
		Platforms: make([]model.PlatformLink, 0, len(links)),
		UpdatedAt: latest.CreatedAt,
	}
	for i := range links {
		detail.Platforms = append(detail.Platforms, links[i].Platform())
	}

	return detail, nil
}

// Import inserts links, replacing rows with the same album and platform.
// It returns the number of rows written.
func (s *Store) Import(ctx context.Context, links []AlbumLink) (int, error) {
	if len(links) == 0 {
		return 0, nil
	}

	for i := range links {
		if links[i].ArtistKo == "" || links[i].AlbumKo == "" {
			return 0, fmt.Errorf("row %d: artist_ko and album_ko are required", i+1)
		}
		if _, err := model.AlbumID(links[i].ArtistKo, links[i].AlbumKo); err != nil {
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
		links[i].ID = 0
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "artist_ko"}, {Name: "album_ko"}, {Name: "platform_type"}, {Name: "platform_name"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"artist_en", "album_en", "album_cover_url", "release_date",
				"platform_id", "platform_code", "platform_url", "found", "created_at",
			}),
		}).CreateInBatches(links, 100).Error
	})
	if err != nil {
		return 0, fmt.Errorf("import album links: %w", err)
	}

	return len(links), nil
}

// CountAlbums returns the number of distinct albums, released or not.
func (s *Store) CountAlbums(ctx context.Context) (int, error) {
	var total int64
	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM (SELECT 1 FROM album_platform_links GROUP BY artist_ko, album_ko)`,
	).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return int(total), nil
}

func summaries(rows []albumRow) []model.AlbumSummary {
	out := make([]model.AlbumSummary, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].summary())
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
