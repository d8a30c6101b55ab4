// Package feed implements the incremental album feed: pagination, the
// infinite scroll trigger and search, reconciled into a single in-memory
// list that is pushed to a render Sink.
//
// # Lifecycle
//
//	ctrl := feed.New(catalogClient, sink, feed.Options{PageSize: 30})
//
//	// first page (or a one-shot search when query is non-empty)
//	ctrl.LoadInitial(ctx, "")
//
//	// later, when the user scrolls near the end
//	if ctrl.ShouldLoadMore(visibleEnd, len(ctrl.State().Items)) {
//	    ctrl.LoadMore(ctx)
//	}
//
// # Concurrency
//
// Controller methods may be called from any goroutine. At most one fetch is
// in flight per LoadInitial: LoadMore calls made while a fetch is running
// return immediately without dispatching. A response that arrives after a
// newer LoadInitial is dropped.
//
// Fetch failures never escape as panics or partial state: the state is left
// as it was (apart from the loading flag), Sink.ReportError is called once,
// and the error is also returned to the caller.
package feed
