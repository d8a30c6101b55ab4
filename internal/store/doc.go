// Package store reads and writes album platform links.
//
// Every row of album_platform_links says where one album can be found on one
// platform. An album is the pair (artist_ko, album_ko); its summary is taken
// from its most recently created row.
//
//	st := store.New(db)
//	albums, total, err := st.ListAlbums(ctx, 1, 30)
//	hits, err := st.Search(ctx, "아이유")
//	detail, err := st.GetAlbum(ctx, "아이유", "Love poem")
//
// Albums whose release date lies in the future are hidden from listings
// until that date.
package store
