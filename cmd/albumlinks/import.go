package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/albumlinks/internal/database"
	"github.com/handiism/albumlinks/internal/store"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import platform links from a JSON file",
		Long: `Import platform links from a JSON array of album_platform_links rows.

Rows with the same artist, album, platform type and platform name replace
the stored row.

Example:
  albumlinks import links.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := store.ReadLinksFile(args[0])
			if err != nil {
				return err
			}

			db, err := database.Initialize(a.settings.Database.Path, a.settings.Database.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			st := store.New(db)
			if err := st.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			n, err := st.Import(cmd.Context(), links)
			if err != nil {
				return err
			}
			total, err := st.CountAlbums(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d links, %d albums in catalog\n", n, total)
			return nil
		},
	}
}
