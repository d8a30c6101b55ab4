// Package config provides configuration management for albumlinks.
//
// This package handles:
//   - Default configuration values
//   - Loading settings from a YAML or JSON file, a .env file and ALBUMLINKS_*
//     environment variables
//   - Saving settings back to a JSON file
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// API at http://localhost:5002, 30 albums per feed page,
//	// carousel rotating every 4 seconds
//
// # Loading
//
//	settings, err := config.Load("/path/to/albumlinks.yaml")
//	if err != nil {
//	    // A missing file is not an error; defaults and env vars are used
//	}
//
// Environment variables override the file. Nested keys use underscores:
//
//	ALBUMLINKS_API_BASE_URL=https://links.example.com
//	ALBUMLINKS_FEED_PAGE_SIZE=50
//
// # Saving Settings
//
//	settings.Feed.PageSize = 50
//	err := settings.Save("/path/to/albumlinks.json")
package config
