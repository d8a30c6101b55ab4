// Package database opens the SQLite database behind the albumlinks backend.
//
//	db, err := database.Initialize("data/album_links.db", false)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.AutoMigrate(&store.AlbumLink{}); err != nil {
//	    return err
//	}
//
// An empty path or ":memory:" opens a private in-memory database, which is
// what the tests use.
package database
