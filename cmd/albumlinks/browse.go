package main

import (
	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse albums in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL != "" {
				a.settings.API.BaseURL = baseURL
			}

			hc := a.httpClient()
			client, err := a.catalogClient(hc)
			if err != nil {
				return err
			}

			// The terminal belongs to the browser, so it gets no logger.
			return tui.Run(tui.Options{
				Settings: a.settings,
				Catalog:  client,
				Covers:   hc,
			})
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API base URL (overrides config)")

	return cmd
}
