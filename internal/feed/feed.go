package feed

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/handiism/albumlinks/internal/catalog"
	"github.com/handiism/albumlinks/internal/model"
)

// DefaultPageSize is the number of albums requested per page.
const DefaultPageSize = 30

// DefaultScrollThreshold is how many rows before the end of the list the
// next page is requested.
const DefaultScrollThreshold = 5

var errNilPage = errors.New("source returned no page")

// Mode tells the sink how to apply a rendered batch.
type Mode int

const (
	// ModeReplace means the batch is the whole feed.
	ModeReplace Mode = iota

	// ModeAppend means the batch goes after what was rendered before.
	ModeAppend
)

func (m Mode) String() string {
	if m == ModeAppend {
		return "append"
	}
	return "replace"
}

// Source is where albums come from. *catalog.Client implements it.
type Source interface {
	FetchPage(ctx context.Context, page, limit int) (*model.AlbumPage, error)
	Search(ctx context.Context, query string) ([]model.AlbumSummary, error)
}

// Sink receives render and error notifications.
//
// Sink methods are called without the controller's lock held and never
// concurrently with each other, so an implementation may call back into the
// controller.
type Sink interface {
	// RenderFeed receives the whole feed for ModeReplace, or only the newly
	// fetched page for ModeAppend. The slice is a copy.
	RenderFeed(items []model.AlbumSummary, mode Mode)

	// ReportError receives a one-line, user-facing message.
	ReportError(message string)
}

// State is a snapshot of the feed.
type State struct {
	Items     []model.AlbumSummary
	Page      int
	HasMore   bool
	IsLoading bool
	Query     string
}

// Options configures a Controller.
type Options struct {
	// PageSize defaults to DefaultPageSize.
	PageSize int

	// ScrollThreshold defaults to DefaultScrollThreshold. Negative values
	// mean zero.
	ScrollThreshold int

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Controller owns the feed state.
type Controller struct {
	src    Source
	sink   Sink
	logger *slog.Logger

	pageSize  int
	threshold int

	mu         sync.Mutex
	state      State
	generation uint64

	// emitMu keeps sink calls in the order their state changes were made.
	emitMu sync.Mutex
}

// New creates a Controller in the state LoadInitial("") resets to: page 1,
// no items, more to load.
func New(src Source, sink Sink, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.ScrollThreshold == 0 {
		opts.ScrollThreshold = DefaultScrollThreshold
	}
	if opts.ScrollThreshold < 0 {
		opts.ScrollThreshold = 0
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		src:       src,
		sink:      sink,
		logger:    opts.Logger,
		pageSize:  opts.PageSize,
		threshold: opts.ScrollThreshold,
		state:     State{Page: 1, HasMore: true},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// snapshot must be called with mu held.
func (c *Controller) snapshot() State {
	s := c.state
	s.Items = cloneItems(c.state.Items)
	return s
}

// PageSize returns the configured page size.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// LoadInitial resets the feed and loads it again.
//
// An empty (or blank) query fetches the first page. A non-empty query runs a
// one-shot search whose result replaces the feed; pagination stays off until
// the next LoadInitial with an empty query.
//
// Any fetch still in flight from before the reset is ignored when it
// completes. The returned bool is always true: a fetch is always dispatched.
func (c *Controller) LoadInitial(ctx context.Context, query string) (bool, error) {
	query = strings.TrimSpace(query)

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = State{Page: 1, HasMore: query == "", IsLoading: true, Query: query}
	c.mu.Unlock()

	c.logger.Debug("feed reset", slog.Uint64("generation", gen), slog.String("query", query))

	if query == "" {
		return true, c.fetchPage(ctx, gen, 1)
	}
	return true, c.search(ctx, gen, query)
}

// LoadMore fetches the page at the cursor and appends it to the feed.
//
// It does nothing and returns false when a fetch is already in flight, when
// the backend reported no more pages, or when a search is active.
func (c *Controller) LoadMore(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state.IsLoading || !c.state.HasMore || c.state.Query != "" {
		c.mu.Unlock()
		return false, nil
	}
	c.state.IsLoading = true
	gen := c.generation
	page := c.state.Page
	c.mu.Unlock()

	return true, c.fetchPage(ctx, gen, page)
}

// ShouldLoadMore reports whether the caller should call LoadMore now, given
// the index just past the last visible row and the number of rendered rows.
func (c *Controller) ShouldLoadMore(visibleEnd, total int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsLoading || !c.state.HasMore || c.state.Query != "" {
		return false
	}
	return total-visibleEnd <= c.threshold
}

func (c *Controller) fetchPage(ctx context.Context, gen uint64, page int) error {
	result, err := c.src.FetchPage(ctx, page, c.pageSize)
	if err == nil && result == nil {
		err = &catalog.Error{Kind: catalog.ErrMalformed, Op: "albums page " + strconv.Itoa(page), Err: errNilPage}
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("dropping stale page", slog.Int("page", page), slog.Uint64("generation", gen))
		return nil
	}
	c.state.IsLoading = false

	if err != nil {
		c.emitError(err, slog.Int("page", page))
		return err
	}

	// on page 1 the batch is also the whole feed
	mode := ModeAppend
	if page == 1 {
		mode = ModeReplace
		c.state.Items = cloneItems(result.Albums)
	} else {
		c.state.Items = append(c.state.Items, result.Albums...)
	}
	c.state.Page = page + 1
	c.state.HasMore = result.HasMore

	c.logger.Debug("page loaded",
		slog.Int("page", page),
		slog.Int("count", len(result.Albums)),
		slog.Int("total_items", len(c.state.Items)),
		slog.Bool("has_more", result.HasMore))

	c.emitRender(cloneItems(result.Albums), mode)
	return nil
}

func (c *Controller) search(ctx context.Context, gen uint64, query string) error {
	albums, err := c.src.Search(ctx, query)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("dropping stale search", slog.String("query", query), slog.Uint64("generation", gen))
		return nil
	}
	c.state.IsLoading = false

	if err != nil {
		c.emitError(err, slog.String("query", query))
		return err
	}

	c.state.Items = cloneItems(albums)
	c.state.HasMore = false

	c.logger.Debug("search loaded", slog.String("query", query), slog.Int("count", len(albums)))

	c.emitRender(cloneItems(c.state.Items), ModeReplace)
	return nil
}

// emitRender must be called with mu held; it releases it.
func (c *Controller) emitRender(items []model.AlbumSummary, mode Mode) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	c.sink.RenderFeed(items, mode)
}

// emitError must be called with mu held; it releases it.
func (c *Controller) emitError(err error, attr slog.Attr) {
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	c.logger.Warn("feed fetch failed", attr, slog.Any("error", err))
	c.sink.ReportError(catalog.UserMessage(err))
}

func cloneItems(items []model.AlbumSummary) []model.AlbumSummary {
	out := make([]model.AlbumSummary, len(items))
	copy(out, items)
	return out
}
