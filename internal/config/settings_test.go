package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	defaults := DefaultSettings()
	assert.Equal(t, defaults.API.BaseURL, settings.API.BaseURL)
	assert.Equal(t, 30, settings.Feed.PageSize)
	assert.Equal(t, 4*time.Second, settings.Carousel.Interval)
	assert.True(t, settings.Carousel.AutoRotate)
	assert.Equal(t, 2, settings.Ranking.Page)
	assert.Equal(t, 10, settings.Ranking.Limit)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 5002, settings.Server.Port)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "albumlinks.yaml")
	content := `
api:
  base_url: https://links.example.com
feed:
  page_size: 50
carousel:
  auto_rotate: false
  interval: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://links.example.com", settings.API.BaseURL)
	assert.Equal(t, 50, settings.Feed.PageSize)
	assert.False(t, settings.Carousel.AutoRotate)
	assert.Equal(t, 2*time.Second, settings.Carousel.Interval)
	// untouched keys keep defaults
	assert.Equal(t, 5, settings.Feed.ScrollThreshold)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "albumlinks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  page_size: 50\n"), 0644))

	t.Setenv("ALBUMLINKS_FEED_PAGE_SIZE", "20")
	t.Setenv("ALBUMLINKS_SERVER_PORT", "9090")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, settings.Feed.PageSize)
	assert.Equal(t, 9090, settings.Server.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"ALBUMLINKS_SERVER_PORT": "70000"}},
		{"page size too large", map[string]string{"ALBUMLINKS_FEED_PAGE_SIZE": "500"}},
		{"base url without scheme", map[string]string{"ALBUMLINKS_API_BASE_URL": "localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "albumlinks.json")

	settings := DefaultSettings()
	settings.API.BaseURL = "https://api.example.com"
	settings.Feed.PageSize = 12
	settings.Carousel.Interval = 7 * time.Second

	require.NoError(t, settings.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", loaded.API.BaseURL)
	assert.Equal(t, 12, loaded.Feed.PageSize)
	assert.Equal(t, 7*time.Second, loaded.Carousel.Interval)
}

func TestValidate_AutoCorrects(t *testing.T) {
	settings := DefaultSettings()
	settings.Carousel.Interval = 0
	settings.Feed.ScrollThreshold = -3
	settings.Server.RateLimitRPS = 0
	settings.Server.RateLimitBurst = 0

	require.NoError(t, settings.Validate())

	assert.Equal(t, DefaultCarouselInterval, settings.Carousel.Interval)
	assert.Equal(t, 0, settings.Feed.ScrollThreshold)
	assert.Equal(t, 10, settings.Server.RateLimitRPS)
	assert.Equal(t, 20, settings.Server.RateLimitBurst)
}

func TestServerSettings_Address(t *testing.T) {
	s := ServerSettings{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", s.Address())
}
