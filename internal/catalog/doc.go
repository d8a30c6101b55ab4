// Package catalog is the typed client for the albumlinks backend API.
//
// It turns the JSON endpoints into model values and classifies every failure
// into one of a small set of sentinel errors:
//
//   - ErrNetwork: the request could not be made or the server answered non-2xx
//   - ErrMalformed: the body was not what the endpoint promises
//   - ErrNotFound: the requested album does not exist
//
// An empty page is not an error.
//
// # Basic Usage
//
//	client := catalog.NewClient(baseURL, http.NewClient(http.Config{}), logger)
//
//	page, err := client.FetchPage(ctx, 1, 30)
//	if err != nil {
//	    fmt.Println(catalog.UserMessage(err))
//	    return
//	}
//	for _, album := range page.Albums {
//	    fmt.Println(album.Artist, "-", album.Title)
//	}
//
// # Album Detail
//
//	detail, err := client.Album(ctx, album.Route()[len("/album/"):])
//	if errors.Is(err, catalog.ErrNotFound) {
//	    fmt.Println("gone")
//	}
package catalog
