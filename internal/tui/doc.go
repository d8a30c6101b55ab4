// Package tui provides the Bubble Tea album browser.
//
// The browser is the render sink of the feed and carousel controllers:
// controller callbacks are turned into Bubble Tea messages by Sink and
// applied in Update, so all view state is touched on the program's goroutine
// only.
//
// Layout, top to bottom: the rotating carousel of new releases, the search
// bar, the album feed (grid or list) with a side panel holding the cover of
// the selected album and the ranking, then a status line and help.
//
//	err := tui.Run(tui.Options{
//	    Settings: settings,
//	    Catalog:  catalogClient,
//	    Covers:   httpClient,
//	})
package tui
