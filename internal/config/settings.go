package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ioutils "github.com/handiism/albumlinks/internal/io"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ALBUMLINKS"

// DefaultCarouselInterval is used when the configured interval is not positive.
const DefaultCarouselInterval = 3 * time.Second

// Settings holds all configuration options.
type Settings struct {
	API      APISettings      `mapstructure:"api" json:"api"`
	Feed     FeedSettings     `mapstructure:"feed" json:"feed"`
	Carousel CarouselSettings `mapstructure:"carousel" json:"carousel"`
	Ranking  RankingSettings  `mapstructure:"ranking" json:"ranking"`
	Server   ServerSettings   `mapstructure:"server" json:"server"`
	Database DatabaseSettings `mapstructure:"database" json:"database"`
}

// APISettings configures the backend client.
type APISettings struct {
	BaseURL   string        `mapstructure:"base_url" json:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" json:"rate_limit"` // requests per second, 0 = unlimited
	UserAgent string        `mapstructure:"user_agent" json:"user_agent"`
}

// FeedSettings configures the album feed.
type FeedSettings struct {
	PageSize        int `mapstructure:"page_size" json:"page_size"`
	ScrollThreshold int `mapstructure:"scroll_threshold" json:"scroll_threshold"` // rows from the end
}

// CarouselSettings configures the header carousel.
type CarouselSettings struct {
	AutoRotate bool          `mapstructure:"auto_rotate" json:"auto_rotate"`
	Interval   time.Duration `mapstructure:"interval" json:"interval"`
	ItemCount  int           `mapstructure:"item_count" json:"item_count"`
}

// RankingSettings configures the ranking shelf.
type RankingSettings struct {
	Page  int `mapstructure:"page" json:"page"`
	Limit int `mapstructure:"limit" json:"limit"`
}

// ServerSettings configures the backend HTTP server.
type ServerSettings struct {
	Host            string        `mapstructure:"host" json:"host"`
	Port            int           `mapstructure:"port" json:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" json:"rate_limit_burst"`
}

// DatabaseSettings configures the SQLite database.
type DatabaseSettings struct {
	Path    string `mapstructure:"path" json:"path"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			BaseURL:   "http://localhost:5002",
			Timeout:   15 * time.Second,
			RateLimit: 5,
			UserAgent: "albumlinks",
		},
		Feed: FeedSettings{
			PageSize:        30,
			ScrollThreshold: 5,
		},
		Carousel: CarouselSettings{
			AutoRotate: true,
			Interval:   4 * time.Second,
			ItemCount:  8,
		},
		Ranking: RankingSettings{
			Page:  2,
			Limit: 10,
		},
		Server: ServerSettings{
			Host:            "0.0.0.0",
			Port:            5002,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitRPS:    10,
			RateLimitBurst:  20,
		},
		Database: DatabaseSettings{
			Path: filepath.Join("data", "album_links.db"),
		},
	}
}

// Load reads settings from a config file, a .env file in the working
// directory and ALBUMLINKS_* environment variables, in increasing order of
// precedence. An empty path or a missing file means defaults are used.
func Load(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return ioutils.WriteFile(path, data)
}

// Validate checks settings and auto-corrects values that have a safe default.
func (s *Settings) Validate() error {
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", s.Server.Port)
	}

	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api base url: %q", s.API.BaseURL)
	}

	if s.Feed.PageSize < 1 || s.Feed.PageSize > 100 {
		return fmt.Errorf("feed page size must be between 1 and 100, got %d", s.Feed.PageSize)
	}

	if s.Feed.ScrollThreshold < 0 {
		s.Feed.ScrollThreshold = 0
	}

	if s.Carousel.Interval <= 0 {
		s.Carousel.Interval = DefaultCarouselInterval
	}

	if s.Carousel.ItemCount <= 0 {
		s.Carousel.ItemCount = 8
	}

	if s.Ranking.Page < 1 {
		s.Ranking.Page = 1
	}

	if s.Ranking.Limit <= 0 {
		s.Ranking.Limit = 10
	}

	if s.Server.RateLimitRPS <= 0 {
		s.Server.RateLimitRPS = 10
	}

	if s.Server.RateLimitBurst <= 0 {
		s.Server.RateLimitBurst = s.Server.RateLimitRPS * 2
	}

	return nil
}

// Address returns the server listen address.
func (s *ServerSettings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// setDefaults registers every key with viper so env overrides and Unmarshal
// see the full tree.
func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.rate_limit", d.API.RateLimit)
	v.SetDefault("api.user_agent", d.API.UserAgent)

	v.SetDefault("feed.page_size", d.Feed.PageSize)
	v.SetDefault("feed.scroll_threshold", d.Feed.ScrollThreshold)

	v.SetDefault("carousel.auto_rotate", d.Carousel.AutoRotate)
	v.SetDefault("carousel.interval", d.Carousel.Interval)
	v.SetDefault("carousel.item_count", d.Carousel.ItemCount)

	v.SetDefault("ranking.page", d.Ranking.Page)
	v.SetDefault("ranking.limit", d.Ranking.Limit)

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.rate_limit_rps", d.Server.RateLimitRPS)
	v.SetDefault("server.rate_limit_burst", d.Server.RateLimitBurst)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.verbose", d.Database.Verbose)
}
