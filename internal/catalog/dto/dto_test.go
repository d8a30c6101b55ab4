package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReleaseDate(t *testing.T) {
	want := time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
		ok    bool
	}{
		{"2024-03-25", true},
		{"2024-03-25 00:00:00", true},
		{"2024-03-25T00:00:00", true},
		{"2024-03-25T00:00:00Z", true},
		{"2024.03.25", true},
		{"2024.03.25.", true},
		{"20240325", true},
		{"2024-03-25 00:00:00.000000", true},
		{"", false},
		{"   ", false},
		{"soon", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseReleaseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, want.Equal(got), "got %v", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestAlbumsPage_Decode(t *testing.T) {
	body := `{
		"success": true,
		"count": 2,
		"total": 40,
		"page": 1,
		"limit": 2,
		"has_more": true,
		"albums": [
			{"artist_ko": "아이유", "album_ko": "Love poem", "album_cover_url": " https://img/1.jpg ",
			 "artist_en": "IU", "album_en": "Love poem", "release_date": "2019-11-18"},
			{"artist_ko": "검정치마", "album_ko": "TEAM BABY", "album_cover_url": "",
			 "artist_en": "", "album_en": "", "release_date": null, "view_count": 1200}
		]
	}`

	var page AlbumsPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	assert.True(t, page.HasMore)
	require.Len(t, page.Albums, 2)

	albums := Summaries(page.Albums)
	assert.Equal(t, "아이유", albums[0].Artist)
	assert.Equal(t, "https://img/1.jpg", albums[0].CoverURL)
	assert.Equal(t, 2019, albums[0].ReleaseDate.Year())
	assert.Nil(t, albums[0].ViewCount)

	assert.False(t, albums[1].HasCover())
	assert.True(t, albums[1].ReleaseDate.IsZero())
	require.NotNil(t, albums[1].ViewCount)
	assert.EqualValues(t, 1200, *albums[1].ViewCount)
}

func TestAlbumsPage_MissingAlbums(t *testing.T) {
	var page AlbumsPage
	require.NoError(t, json.Unmarshal([]byte(`{"success": true}`), &page))
	assert.Nil(t, page.Albums)

	require.NoError(t, json.Unmarshal([]byte(`{"success": true, "albums": []}`), &page))
	assert.NotNil(t, page.Albums)
	assert.Empty(t, page.Albums)
}

func TestReleaseDate_Marshal(t *testing.T) {
	ja := FromSummary(Summaries([]JSONAlbum{{
		ArtistKo:    "a",
		AlbumKo:     "b",
		ReleaseDate: &ReleaseDate{Time: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
	}})[0])

	out, err := json.Marshal(ja)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"release_date":"2020-01-02"`)

	out, err = json.Marshal(JSONAlbum{ArtistKo: "a", AlbumKo: "b", ReleaseDate: &ReleaseDate{}})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"release_date":""`)
	assert.NotContains(t, string(out), "view_count")
}
