// Package showcase loads the fixed shelves of the home screen and the cover
// art shown next to them.
//
// # Shelves
//
// The Loader fetches two shelves concurrently:
//
//   - Latest: the newest albums, also used as the carousel items
//   - Ranking: a short ranked list taken from a later page of the listing
//
// A shelf that fails is reported and left empty; the other one still loads.
//
//	loader := showcase.NewLoader(client, showcase.DefaultOptions(), func(e showcase.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	shelves, err := loader.Load(ctx)
//
// # Covers
//
// The CoverLoader downloads cover art, scales it to thumbnail size and keeps
// the result in memory, keyed by URL and size:
//
//	covers := showcase.NewCoverLoader(httpClient, ioutils.NewImageService(), 4)
//	thumb, err := covers.Cover(ctx, album.CoverURL, 24, 24)
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
package showcase
