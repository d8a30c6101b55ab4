// Package server is the albumlinks backend: a gin HTTP server in front of
// the album link store.
//
// Routes:
//
//	GET /api/albums-with-links?page=1&limit=50   paginated released albums
//	GET /api/search?q=text                        one-shot search, max 200 albums
//	GET /api/album/{id}                           album with platform links
//	GET /album/{id}                               same as /api/album/{id}
//	GET /health                                   service and database status
//
// {id} is the composite identifier built by model.AlbumID. Every /api route
// is rate limited per client IP. Failed calls answer {"success": false,
// "error": "..."}.
//
//	srv := server.NewServer(settings.Server, &server.Dependencies{Store: st, DB: db})
//	if err := srv.Initialize(); err != nil {
//	    return err
//	}
//	go srv.Start()
//	defer srv.Shutdown(ctx)
package server
