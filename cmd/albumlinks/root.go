package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/catalog"
	"github.com/handiism/albumlinks/internal/config"
	albumhttp "github.com/handiism/albumlinks/internal/http"
)

// app carries what the subcommands share after flag parsing.
type app struct {
	configPath string
	logLevel   string
	jsonLogs   bool

	settings *config.Settings
	logger   *slog.Logger
}

// newRootCmd builds the command tree. Each call returns a fresh tree so tests
// do not share flag state.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "albumlinks",
		Short: "Album link catalog server and terminal browser",
		Long: `albumlinks - find every album on every platform

Serves a catalog of albums with their links on streaming and download
platforms, and browses it from the terminal.

Features:
  • Paginated album feed with newest releases first
  • Search across Korean and romanized names
  • Per-album platform links
  • Terminal browser with a rotating new-release carousel`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (yaml or json)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.jsonLogs, "json-logs", false, "enable JSON formatted logs")

	root.AddCommand(
		newServeCmd(a),
		newBrowseCmd(a),
		newFeedCmd(a),
		newSearchCmd(a),
		newImportCmd(a),
		newVersionCmd(),
	)

	return root
}

// init loads settings and builds the logger.
func (a *app) init(logOut io.Writer) error {
	logger, err := newLogger(logOut, a.logLevel, a.jsonLogs)
	if err != nil {
		return err
	}
	a.logger = logger

	settings, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.settings = settings

	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, level string, jsonLogs bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if jsonLogs {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// httpClient returns the client used for API calls and cover downloads.
func (a *app) httpClient() *albumhttp.Client {
	return albumhttp.NewClient(albumhttp.Config{
		Timeout:   a.settings.API.Timeout,
		UserAgent: a.settings.API.UserAgent,
		RateLimit: a.settings.API.RateLimit,
	})
}

func (a *app) catalogClient(hc *albumhttp.Client) (*catalog.Client, error) {
	return catalog.NewClient(a.settings.API.BaseURL, hc, a.logger)
}
