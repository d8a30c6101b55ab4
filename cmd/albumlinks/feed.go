package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/catalog/dto"
	"github.com/handiism/albumlinks/internal/feed"
	"github.com/handiism/albumlinks/internal/model"
)

func newFeedCmd(a *app) *cobra.Command {
	var (
		pages  int
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the album feed",
		Long: `Print the album feed, newest releases first.

Example:
  albumlinks feed
  albumlinks feed --pages 3 --limit 20
  albumlinks feed --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", pages)
			}
			if limit == 0 {
				limit = a.settings.Feed.PageSize
			}

			client, err := a.catalogClient(a.httpClient())
			if err != nil {
				return err
			}

			sink := newPrintSink(cmd.OutOrStdout(), asJSON)
			ctrl := feed.New(client, sink, feed.Options{PageSize: limit, Logger: a.logger})
			return runFeed(cmd.Context(), ctrl, sink, pages)
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to load")
	cmd.Flags().IntVar(&limit, "limit", 0, "albums per page (defaults to feed.page_size)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print albums as JSON")

	return cmd
}

// runFeed loads up to pages pages, stopping early when the feed ends.
func runFeed(ctx context.Context, ctrl *feed.Controller, sink *printSink, pages int) error {
	if _, err := ctrl.LoadInitial(ctx, ""); err != nil {
		return sink.failure(err)
	}
	for i := 1; i < pages && ctrl.State().HasMore; i++ {
		if _, err := ctrl.LoadMore(ctx); err != nil {
			return sink.failure(err)
		}
	}
	return sink.finish(ctrl.State())
}

// printSink renders the feed as text lines, or collects it for JSON output.
type printSink struct {
	out    io.Writer
	asJSON bool
	items  []model.AlbumSummary
	errMsg string
}

func newPrintSink(out io.Writer, asJSON bool) *printSink {
	return &printSink{out: out, asJSON: asJSON}
}

func (s *printSink) RenderFeed(items []model.AlbumSummary, mode feed.Mode) {
	if mode == feed.ModeReplace {
		s.items = s.items[:0]
	}
	for _, album := range items {
		s.items = append(s.items, album)
		if !s.asJSON {
			fmt.Fprintln(s.out, formatAlbum(len(s.items), album))
		}
	}
}

func (s *printSink) ReportError(message string) {
	s.errMsg = message
}

// failure prefers the message already reported to the user.
func (s *printSink) failure(err error) error {
	if s.errMsg != "" {
		return errors.New(s.errMsg)
	}
	return err
}

func (s *printSink) finish(state feed.State) error {
	if s.asJSON {
		albums := make([]dto.JSONAlbum, 0, len(s.items))
		for _, album := range s.items {
			albums = append(albums, dto.FromSummary(album))
		}
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(albums)
	}

	switch {
	case len(s.items) == 0 && state.Query != "":
		fmt.Fprintf(s.out, "No albums match %q.\n", state.Query)
	case len(s.items) == 0:
		fmt.Fprintln(s.out, "No albums found.")
	case state.HasMore:
		fmt.Fprintf(s.out, "\n%d albums shown, more available (next page %d)\n", len(s.items), state.Page)
	default:
		fmt.Fprintf(s.out, "\n%d albums\n", len(s.items))
	}
	return nil
}

func formatAlbum(n int, album model.AlbumSummary) string {
	line := fmt.Sprintf("%4d. %s - %s", n, album.DisplayArtist(), album.DisplayTitle())
	if !album.ReleaseDate.IsZero() {
		line += " (" + album.ReleaseDate.Format(dto.DateLayout) + ")"
	}
	if route := album.Route(); route != "" {
		line += "  " + route
	}
	return line
}
