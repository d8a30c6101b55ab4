package showcase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/albumlinks/internal/config"
	"github.com/handiism/albumlinks/internal/model"
)

type pageSource struct {
	mu    sync.Mutex
	calls map[int]int
	errs  map[int]error
}

func (s *pageSource) FetchPage(ctx context.Context, page, limit int) (*model.AlbumPage, error) {
	s.mu.Lock()
	s.calls[page] = limit
	err := s.errs[page]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	albums := make([]model.AlbumSummary, limit+2) // backend may ignore the limit
	for i := range albums {
		albums[i] = model.AlbumSummary{Artist: "a", Title: fmt.Sprintf("p%d-%d", page, i)}
	}
	return &model.AlbumPage{Albums: albums, Page: page, Limit: limit, HasMore: true}, nil
}

func TestLoader_Load(t *testing.T) {
	src := &pageSource{calls: map[int]int{}}

	var events []ProgressEvent
	loader := NewLoader(src, DefaultOptions(), func(e ProgressEvent) { events = append(events, e) })

	shelves, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 8, 2: 10}, src.calls)
	assert.Len(t, shelves.Latest.Albums, 8)
	assert.Len(t, shelves.Ranking.Albums, 10)
	assert.Equal(t, "p1-0", shelves.Latest.Albums[0].Title)
	assert.Equal(t, "p2-0", shelves.Ranking.Albums[0].Title)
	assert.NoError(t, shelves.Latest.Err)
	assert.NoError(t, shelves.Ranking.Err)
	assert.NotEmpty(t, events)
}

func TestLoader_PartialFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &pageSource{calls: map[int]int{}, errs: map[int]error{2: boom}}

	var errorEvents int
	loader := NewLoader(src, Options{}, func(e ProgressEvent) {
		if e.Level == LevelError {
			errorEvents++
		}
	})

	shelves, err := loader.Load(context.Background())
	require.NoError(t, err, "one shelf still loaded")

	assert.Len(t, shelves.Latest.Albums, 8)
	assert.ErrorIs(t, shelves.Ranking.Err, boom)
	assert.NotNil(t, shelves.Ranking.Albums)
	assert.Empty(t, shelves.Ranking.Albums)
	assert.Equal(t, 1, errorEvents)
}

func TestLoader_AllFail(t *testing.T) {
	boom := errors.New("boom")
	src := &pageSource{calls: map[int]int{}, errs: map[int]error{1: boom, 2: boom}}

	shelves, err := NewLoader(src, DefaultOptions(), nil).Load(context.Background())
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, shelves)
	assert.Error(t, shelves.Latest.Err)
	assert.Error(t, shelves.Ranking.Err)
}

func TestOptionsFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.Carousel.ItemCount = 5
	s.Ranking.Page = 3
	s.Ranking.Limit = 7

	assert.Equal(t, Options{LatestLimit: 5, RankingPage: 3, RankingLimit: 7}, OptionsFromSettings(s))
}

func TestProgressLevel_String(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "error", LevelError.String())
}

type fakeDownloader struct {
	calls atomic.Int32
	delay time.Duration
	data  map[string][]byte
}

func (d *fakeDownloader) DownloadBytes(ctx context.Context, url string) ([]byte, error) {
	d.calls.Add(1)
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
	data, ok := d.data[url]
	if !ok {
		return nil, fmt.Errorf("HTTP 404: %s", url)
	}
	return data, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCoverLoader_CachesThumbnails(t *testing.T) {
	dl := &fakeDownloader{data: map[string][]byte{"https://img/a.png": pngBytes(t, 100, 50)}}
	covers := NewCoverLoader(dl, nil, 2)

	img, err := covers.Cover(context.Background(), "https://img/a.png", 20, 20)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())

	again, err := covers.Cover(context.Background(), "https://img/a.png", 20, 20)
	require.NoError(t, err)
	assert.Same(t, img, again)
	assert.EqualValues(t, 1, dl.calls.Load())

	cached, ok := covers.Cached("https://img/a.png", 20, 20)
	assert.True(t, ok)
	assert.Same(t, img, cached)

	_, ok = covers.Cached("https://img/a.png", 10, 10)
	assert.False(t, ok, "a different size is a different entry")
}

func TestCoverLoader_SharesInflightDownload(t *testing.T) {
	dl := &fakeDownloader{delay: 20 * time.Millisecond, data: map[string][]byte{"u": pngBytes(t, 8, 8)}}
	covers := NewCoverLoader(dl, nil, 4)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := covers.Cover(context.Background(), "u", 4, 4)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, dl.calls.Load())
}

func TestCoverLoader_Errors(t *testing.T) {
	dl := &fakeDownloader{data: map[string][]byte{"bad": []byte("not an image")}}
	covers := NewCoverLoader(dl, nil, 1)

	_, err := covers.Cover(context.Background(), "", 4, 4)
	assert.Error(t, err)

	_, err = covers.Cover(context.Background(), "missing", 4, 4)
	assert.Error(t, err)

	_, err = covers.Cover(context.Background(), "bad", 4, 4)
	assert.Error(t, err)

	// failures are retried
	_, err = covers.Cover(context.Background(), "missing", 4, 4)
	assert.Error(t, err)
	assert.EqualValues(t, 3, dl.calls.Load())
}

func TestCoverLoader_Prefetch(t *testing.T) {
	dl := &fakeDownloader{data: map[string][]byte{
		"one": pngBytes(t, 10, 10),
		"two": pngBytes(t, 10, 10),
	}}
	covers := NewCoverLoader(dl, nil, 2)

	albums := []model.AlbumSummary{
		{Artist: "a", Title: "1", CoverURL: "one"},
		{Artist: "a", Title: "2", CoverURL: "two"},
		{Artist: "a", Title: "3", CoverURL: "gone"},
		{Artist: "a", Title: "no cover"},
	}

	var warnings int
	loaded := covers.Prefetch(context.Background(), albums, 4, 4, func(e ProgressEvent) {
		if e.Level == LevelWarning {
			warnings++
		}
	})

	assert.Equal(t, 2, loaded)
	assert.Equal(t, 1, warnings)
	assert.EqualValues(t, 3, dl.calls.Load())

	_, ok := covers.Cached("two", 4, 4)
	assert.True(t, ok)
}
