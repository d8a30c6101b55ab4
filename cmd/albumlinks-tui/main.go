package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/albumlinks/internal/catalog"
	"github.com/handiism/albumlinks/internal/config"
	albumhttp "github.com/handiism/albumlinks/internal/http"
	"github.com/handiism/albumlinks/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	baseURLFlag := flag.String("base-url", "", "API base URL (overrides config)")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURLFlag != "" {
		settings.API.BaseURL = *baseURLFlag
	}

	hc := albumhttp.NewClient(albumhttp.Config{
		Timeout:   settings.API.Timeout,
		UserAgent: settings.API.UserAgent,
		RateLimit: settings.API.RateLimit,
	})
	client, err := catalog.NewClient(settings.API.BaseURL, hc, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(tui.Options{Settings: settings, Catalog: client, Covers: hc}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
