package showcase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

func (l ProgressLevel) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "info"
	}
}

// ProgressEvent represents a loading progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Source is where shelves are fetched from. *catalog.Client implements it.
type Source interface {
	FetchPage(ctx context.Context, page, limit int) (*model.AlbumPage, error)
}

// Shelf names.
const (
	ShelfLatest  = "latest"
	ShelfRanking = "ranking"
)

// Shelf is one loaded list of albums.
type Shelf struct {
	Name   string
	Albums []model.AlbumSummary

	// Err is set when the shelf could not be loaded. Albums is empty then.
	Err error
}

// Shelves is the result of Loader.Load.
type Shelves struct {
	Latest  Shelf
	Ranking Shelf
}

// Options configures which pages the shelves come from.
type Options struct {
	LatestLimit  int
	RankingPage  int
	RankingLimit int
}

// DefaultOptions returns the shelf layout of the home screen.
func DefaultOptions() Options {
	return Options{LatestLimit: 8, RankingPage: 2, RankingLimit: 10}
}

// OptionsFromSettings builds Options from carousel and ranking settings.
func OptionsFromSettings(s *config.Settings) Options {
	return Options{
		LatestLimit:  s.Carousel.ItemCount,
		RankingPage:  s.Ranking.Page,
		RankingLimit: s.Ranking.Limit,
	}
}

// Loader loads the home screen shelves.
type Loader struct {
	src        Source
	opts       Options
	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewLoader creates a new Loader. onProgress may be nil.
func NewLoader(src Source, opts Options, onProgress func(ProgressEvent)) *Loader {
	d := DefaultOptions()
	if opts.LatestLimit <= 0 {
		opts.LatestLimit = d.LatestLimit
	}
	if opts.RankingPage <= 0 {
		opts.RankingPage = d.RankingPage
	}
	if opts.RankingLimit <= 0 {
		opts.RankingLimit = d.RankingLimit
	}

	return &Loader{src: src, opts: opts, onProgress: onProgress}
}

// Load fetches both shelves concurrently.
//
// A failing shelf does not stop the other one. The returned error is non-nil
// only when every shelf failed; per-shelf errors are in Shelf.Err.
func (l *Loader) Load(ctx context.Context) (*Shelves, error) {
	shelves := &Shelves{
		Latest:  Shelf{Name: ShelfLatest},
		Ranking: Shelf{Name: ShelfRanking},
	}

	var g errgroup.Group
	g.Go(func() error {
		l.loadShelf(ctx, &shelves.Latest, 1, l.opts.LatestLimit)
		return nil
	})
	g.Go(func() error {
		l.loadShelf(ctx, &shelves.Ranking, l.opts.RankingPage, l.opts.RankingLimit)
		return nil
	})
	_ = g.Wait()

	if shelves.Latest.Err != nil && shelves.Ranking.Err != nil {
		return shelves, errors.Join(shelves.Latest.Err, shelves.Ranking.Err)
	}
	return shelves, nil
}

func (l *Loader) loadShelf(ctx context.Context, shelf *Shelf, page, limit int) {
	l.progress(ProgressEvent{Message: fmt.Sprintf("Loading %s albums (page %d, %d items)", shelf.Name, page, limit), Level: LevelVerbose})

	result, err := l.src.FetchPage(ctx, page, limit)
	if err != nil {
		shelf.Err = fmt.Errorf("%s shelf: %w", shelf.Name, err)
		shelf.Albums = []model.AlbumSummary{}
		l.progress(ProgressEvent{Message: fmt.Sprintf("Error loading %s albums: %v", shelf.Name, err), Level: LevelError})
		return
	}

	shelf.Albums = result.Albums
	if len(shelf.Albums) > limit {
		shelf.Albums = shelf.Albums[:limit]
	}
	l.progress(ProgressEvent{Message: fmt.Sprintf("Loaded %d %s albums", len(shelf.Albums), shelf.Name), Level: LevelSuccess})
}

// progress serializes callbacks from the shelf goroutines.
func (l *Loader) progress(event ProgressEvent) {
	if l.onProgress == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onProgress(event)
}
