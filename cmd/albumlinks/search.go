package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/feed"
)

func newSearchCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search albums by artist or title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.catalogClient(a.httpClient())
			if err != nil {
				return err
			}

			sink := newPrintSink(cmd.OutOrStdout(), asJSON)
			ctrl := feed.New(client, sink, feed.Options{Logger: a.logger})
			if _, err := ctrl.LoadInitial(cmd.Context(), args[0]); err != nil {
				return sink.failure(err)
			}
			return sink.finish(ctrl.State())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print albums as JSON")

	return cmd
}
