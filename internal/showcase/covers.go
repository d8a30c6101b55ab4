package showcase

import (
	"context"
	"fmt"
	"image"
	"sync"

	ioutils "github.com/handiism/albumlinks/internal/io"
	"github.com/handiism/albumlinks/internal/model"
	"golang.org/x/sync/errgroup"
)

// Downloader fetches raw bytes. *http.Client implements it.
type Downloader interface {
	DownloadBytes(ctx context.Context, url string) ([]byte, error)
}

type coverKey struct {
	url           string
	width, height int
}

// CoverLoader downloads and scales cover art, caching the thumbnails.
//
// Concurrent requests for the same cover share one download.
type CoverLoader struct {
	dl          Downloader
	images      *ioutils.ImageService
	concurrency int

	mu       sync.Mutex
	cache    map[coverKey]*image.RGBA
	inflight map[coverKey]*coverCall
}

type coverCall struct {
	done chan struct{}
	img  *image.RGBA
	err  error
}

// NewCoverLoader creates a CoverLoader. concurrency bounds Prefetch; values
// below 1 mean 4.
func NewCoverLoader(dl Downloader, images *ioutils.ImageService, concurrency int) *CoverLoader {
	if images == nil {
		images = ioutils.NewImageService()
	}
	if concurrency < 1 {
		concurrency = 4
	}

	return &CoverLoader{
		dl:          dl,
		images:      images,
		concurrency: concurrency,
		cache:       make(map[coverKey]*image.RGBA),
		inflight:    make(map[coverKey]*coverCall),
	}
}

// Cached returns the thumbnail if it is already loaded.
func (c *CoverLoader) Cached(url string, width, height int) (*image.RGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.cache[coverKey{url, width, height}]
	return img, ok
}

// Cover returns the cover at url scaled to fit width x height.
//
// Failures are not cached; a later call tries again.
func (c *CoverLoader) Cover(ctx context.Context, url string, width, height int) (*image.RGBA, error) {
	if url == "" {
		return nil, fmt.Errorf("no cover url")
	}
	key := coverKey{url, width, height}

	c.mu.Lock()
	if img, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.img, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &coverCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	call.img, call.err = c.load(ctx, url, width, height)

	c.mu.Lock()
	delete(c.inflight, key)
	if call.err == nil {
		c.cache[key] = call.img
	}
	c.mu.Unlock()
	close(call.done)

	return call.img, call.err
}

func (c *CoverLoader) load(ctx context.Context, url string, width, height int) (*image.RGBA, error) {
	data, err := c.dl.DownloadBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download cover: %w", err)
	}
	return c.images.Thumbnail(ctx, data, width, height)
}

// Prefetch loads the covers of albums in the background, at most
// concurrency at a time. Albums without a cover are skipped. Failures are
// reported through onProgress and do not stop the others.
//
// Returns the number of covers that were loaded.
func (c *CoverLoader) Prefetch(ctx context.Context, albums []model.AlbumSummary, width, height int, onProgress func(ProgressEvent)) int {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	var mu sync.Mutex
	loaded := 0
	report := func(e ProgressEvent) {
		if onProgress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		onProgress(e)
	}

	for _, album := range albums {
		if !album.HasCover() {
			continue
		}
		g.Go(func() error {
			if _, err := c.Cover(ctx, album.CoverURL, width, height); err != nil {
				report(ProgressEvent{Message: fmt.Sprintf("Error loading cover for %s: %v", album.DisplayTitle(), err), Level: LevelWarning})
				return nil // Continue with other covers
			}
			mu.Lock()
			loaded++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report(ProgressEvent{Message: fmt.Sprintf("Loaded %d covers", loaded), Level: LevelVerbose})
	return loaded
}
