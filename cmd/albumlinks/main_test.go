package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/albumlinks/internal/catalog"
	"github.com/handiism/albumlinks/internal/catalog/dto"
	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/database"
	"github.com/handiism/albumlinks/internal/server"
	"github.com/handiism/albumlinks/internal/store"
)

const linksJSON = `[
  {"artist_ko": "Artist A", "album_ko": "Album A", "album_cover_url": "https://img/a", "release_date": "2020-01-01",
   "platform_type": "domestic", "platform_name": "Melon", "platform_url": "https://melon/a", "found": true},
  {"artist_ko": "Artist B", "album_ko": "Album B", "album_cover_url": "https://img/b", "release_date": "2019-01-01",
   "platform_type": "domestic", "platform_name": "Melon", "platform_url": "https://melon/b", "found": true},
  {"artist_ko": "Artist C", "album_ko": "Album C", "release_date": "2021-01-01",
   "platform_type": "global", "platform_name": "Spotify", "found": false}
]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "no args shows help",
			args:           []string{},
			expectedOutput: "find every album on every platform",
		},
		{
			name:           "help flag",
			args:           []string{"--help"},
			expectedOutput: "Available Commands:",
		},
		{
			name:    "invalid flag",
			args:    []string{"--invalid-flag"},
			wantErr: true,
		},
		{
			name:    "search needs a query",
			args:    []string{"search"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.expectedOutput)
		})
	}
}

func TestLogFlags(t *testing.T) {
	cmd := newRootCmd()

	logFlag := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, logFlag)
	assert.Equal(t, "info", logFlag.DefValue)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("json-logs"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{level: "debug"},
		{level: "INFO"},
		{level: " warn "},
		{level: "error"},
		{level: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := newLogger(new(bytes.Buffer), tt.level, false)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	buf := new(bytes.Buffer)
	logger, err := newLogger(buf, "info", true)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:      dev")

	out, err = execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "feed")
	assert.ErrorContains(t, err, "invalid log level")
}

// serveCatalog imports linksJSON through the import command and serves the
// resulting database.
func serveCatalog(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "links.db")
	t.Setenv("ALBUMLINKS_DATABASE_PATH", dbPath)

	file := filepath.Join(dir, "links.json")
	require.NoError(t, os.WriteFile(file, []byte(linksJSON), 0o644))

	out, err := execute(t, "import", file)
	require.NoError(t, err)
	assert.Equal(t, "Imported 3 links, 3 albums in catalog\n", out)

	db, err := database.Initialize(dbPath, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := server.NewServer(config.DefaultSettings().Server, &server.Dependencies{Store: store.New(db), DB: db})
	require.NoError(t, srv.Initialize())

	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)
	t.Setenv("ALBUMLINKS_API_BASE_URL", ts.URL)
}

func TestImportThenFeed(t *testing.T) {
	serveCatalog(t)

	out, err := execute(t, "feed", "--limit", "2", "--pages", "5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "   1. Artist A - Album A (2020-01-01)  /album/Artist%20A%7C%7C%7CAlbum%20A"))
	assert.True(t, strings.HasPrefix(lines[1], "   2. Artist B - Album B"))
	assert.True(t, strings.HasPrefix(lines[2], "   3. Artist C - Album C"))
	assert.Equal(t, "3 albums", lines[len(lines)-1])
}

func TestFeed_OnePage(t *testing.T) {
	serveCatalog(t)

	out, err := execute(t, "feed", "--limit", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Artist C")
	assert.Contains(t, out, "2 albums shown, more available (next page 2)")
}

func TestSearch_JSON(t *testing.T) {
	serveCatalog(t)

	out, err := execute(t, "search", "Artist B", "--json")
	require.NoError(t, err)

	var albums []dto.JSONAlbum
	require.NoError(t, json.Unmarshal([]byte(out), &albums))
	require.Len(t, albums, 1)
	assert.Equal(t, "Album B", albums[0].AlbumKo)
}

func TestSearch_NoMatch(t *testing.T) {
	serveCatalog(t)

	out, err := execute(t, "search", "nothing like this")
	require.NoError(t, err)
	assert.Equal(t, "No albums match \"nothing like this\".\n", out)
}

func TestFeed_Unreachable(t *testing.T) {
	ts := httptest.NewServer(nil)
	t.Setenv("ALBUMLINKS_API_BASE_URL", ts.URL)
	t.Setenv("ALBUMLINKS_API_RATE_LIMIT", "0")
	ts.Close()

	_, err := execute(t, "feed")
	require.Error(t, err)
	assert.Equal(t, catalog.MsgNetwork, err.Error())
}

func TestFeed_InvalidPages(t *testing.T) {
	_, err := execute(t, "feed", "--pages", "0")
	assert.ErrorContains(t, err, "--pages must be at least 1")
}

func TestImport_MissingFile(t *testing.T) {
	t.Setenv("ALBUMLINKS_DATABASE_PATH", filepath.Join(t.TempDir(), "links.db"))
	_, err := execute(t, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
