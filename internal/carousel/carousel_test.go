package carousel

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/albumlinks/internal/model"
)

type recorder struct {
	mu      sync.Mutex
	actives []int
	last    []model.AlbumSummary
}

func (r *recorder) RenderCarousel(items []model.AlbumSummary, active int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actives = append(r.actives, active)
	r.last = items
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actives)
}

func items(n int) []model.AlbumSummary {
	out := make([]model.AlbumSummary, n)
	for i := range out {
		out[i] = model.AlbumSummary{Artist: "artist", Title: fmt.Sprintf("album %d", i)}
	}
	return out
}

func TestNext_IsCyclic(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			ctrl := New(&recorder{}, Options{})
			ctrl.Initialize(items(n))
			ctrl.ScrollTo(n / 2)
			start := ctrl.State().CurrentIndex

			for i := 0; i < n; i++ {
				ctrl.Next()
			}
			assert.Equal(t, start, ctrl.State().CurrentIndex)

			for i := 0; i < n; i++ {
				ctrl.Previous()
			}
			assert.Equal(t, start, ctrl.State().CurrentIndex)
		})
	}
}

func TestNextPrevious_Wrap(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{})
	ctrl.Initialize(items(3))

	ctrl.Previous()
	assert.Equal(t, 2, ctrl.State().CurrentIndex)
	ctrl.Next()
	ctrl.Next()
	assert.Equal(t, 1, ctrl.State().CurrentIndex)

	assert.Equal(t, []int{0, 2, 0, 1}, sink.actives)
}

func TestEmptyCarousel(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{AutoRotate: true, Interval: time.Millisecond})
	ctrl.Initialize(nil)

	ctrl.Next()
	ctrl.Previous()
	ctrl.Resume()
	ctrl.ScrollTo(0)

	state := ctrl.State()
	assert.Equal(t, 0, state.CurrentIndex)
	assert.False(t, state.Rotating, "nothing to rotate")
	assert.Equal(t, 1, sink.count(), "only the initial render")
}

func TestInitialize_StartsRotationPerPolicy(t *testing.T) {
	auto := New(&recorder{}, Options{AutoRotate: true, Interval: time.Hour})
	defer auto.Dispose()
	auto.Initialize(items(3))
	assert.True(t, auto.State().Rotating)

	manual := New(&recorder{}, Options{AutoRotate: false, Interval: time.Hour})
	defer manual.Dispose()
	manual.Initialize(items(3))
	assert.False(t, manual.State().Rotating)
}

func TestPauseResume_KeepsIndex(t *testing.T) {
	ctrl := New(&recorder{}, Options{AutoRotate: true, Interval: time.Hour})
	defer ctrl.Dispose()

	ctrl.Initialize(items(4))
	ctrl.Next()

	ctrl.Pause()
	assert.False(t, ctrl.State().Rotating)
	ctrl.Resume()

	state := ctrl.State()
	assert.Equal(t, 1, state.CurrentIndex)
	assert.True(t, state.Rotating)
}

func TestRotation_Advances(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{AutoRotate: true, Interval: 5 * time.Millisecond})
	ctrl.Initialize(items(3))

	assert.Eventually(t, func() bool { return sink.count() >= 4 }, 2*time.Second, time.Millisecond)

	ctrl.Dispose()
	stopped := sink.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, sink.count(), "no renders after Dispose returns")

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for i, active := range sink.actives {
		assert.Equal(t, i%3, active)
	}
}

func TestResume_DoesNotStackTimers(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{AutoRotate: true, Interval: 20 * time.Millisecond})
	ctrl.Initialize(items(5))

	for i := 0; i < 20; i++ {
		ctrl.Resume()
	}

	time.Sleep(110 * time.Millisecond)
	ctrl.Dispose()

	// one ticker gives about 5 ticks here; twenty stacked tickers would give ~100
	assert.LessOrEqual(t, sink.count(), 1+10)
}

func TestDispose_DisablesResume(t *testing.T) {
	ctrl := New(&recorder{}, Options{AutoRotate: true, Interval: time.Hour})
	ctrl.Initialize(items(2))

	ctrl.Dispose()
	ctrl.Resume()
	ctrl.PointerLeave()

	assert.False(t, ctrl.State().Rotating)

	// calling Dispose twice is fine
	ctrl.Dispose()
}

func TestDispose_StopsNavigation(t *testing.T) {
	tests := []struct {
		name string
		move func(c *Controller)
	}{
		{name: "next", move: func(c *Controller) { c.Next() }},
		{name: "previous", move: func(c *Controller) { c.Previous() }},
		{name: "scroll to", move: func(c *Controller) { c.ScrollTo(3) }},
		{name: "drag", move: func(c *Controller) {
			c.DragStart(300)
			c.DragMove(100)
			c.DragEnd()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recorder{}
			ctrl := New(sink, Options{SlotWidth: 100})
			ctrl.Initialize(items(5))
			ctrl.ScrollTo(1)
			require.Equal(t, 2, sink.count())

			ctrl.Dispose()
			tt.move(ctrl)

			assert.Equal(t, 2, sink.count(), "no render after Dispose")
			assert.Equal(t, 1, ctrl.State().CurrentIndex)
		})
	}
}

func TestPointer_PausesAndResumes(t *testing.T) {
	tests := []struct {
		name       string
		autoRotate bool
		wantAfter  bool
	}{
		{name: "auto-rotate resumes", autoRotate: true, wantAfter: true},
		{name: "manual stays stopped", autoRotate: false, wantAfter: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := New(&recorder{}, Options{AutoRotate: tt.autoRotate, Interval: time.Hour})
			defer ctrl.Dispose()
			ctrl.Initialize(items(3))

			ctrl.PointerEnter()
			assert.False(t, ctrl.State().Rotating)

			ctrl.PointerLeave()
			assert.Equal(t, tt.wantAfter, ctrl.State().Rotating)

			ctrl.TouchStart(10)
			assert.False(t, ctrl.State().Rotating)

			ctrl.TouchEnd()
			assert.Equal(t, tt.wantAfter, ctrl.State().Rotating)
		})
	}
}

func TestDrag_Offset(t *testing.T) {
	ctrl := New(&recorder{}, Options{AutoRotate: true, Interval: time.Hour})
	defer ctrl.Dispose()
	ctrl.Initialize(items(3))

	ctrl.DragStart(100)
	state := ctrl.State()
	assert.True(t, state.Dragging)
	assert.False(t, state.Rotating)
	assert.Equal(t, 0, state.DragOffset)

	ctrl.DragMove(60)
	assert.Equal(t, 80, ctrl.State().DragOffset)

	ctrl.DragMove(130)
	assert.Equal(t, -60, ctrl.State().DragOffset)

	// leaving the carousel mid-drag does not restart rotation
	ctrl.PointerLeave()
	assert.False(t, ctrl.State().Rotating)

	ctrl.DragEnd()
	state = ctrl.State()
	assert.False(t, state.Dragging)
	assert.Equal(t, 0, state.DragOffset)
	assert.True(t, state.Rotating)
}

func TestDragEnd_SnapsToNearestSlot(t *testing.T) {
	tests := []struct {
		name      string
		from, to  int
		wantIndex int
	}{
		{name: "two slots forward", from: 500, to: 400, wantIndex: 2},
		{name: "one slot back wraps", from: 0, to: 60, wantIndex: 4},
		{name: "short drag stays", from: 100, to: 80, wantIndex: 0},
		{name: "half slot rounds up", from: 100, to: 75, wantIndex: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recorder{}
			ctrl := New(sink, Options{SlotWidth: 100})
			ctrl.Initialize(items(5))

			ctrl.DragStart(tt.from)
			ctrl.DragMove(tt.to)
			ctrl.DragEnd()

			assert.Equal(t, tt.wantIndex, ctrl.State().CurrentIndex)
			if tt.wantIndex == 0 {
				assert.Equal(t, 1, sink.count())
			}
		})
	}
}

func TestDrag_IgnoredWithoutStart(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{})
	ctrl.Initialize(items(3))

	ctrl.DragMove(50)
	ctrl.DragEnd()

	state := ctrl.State()
	assert.Equal(t, 0, state.DragOffset)
	assert.Equal(t, 0, state.CurrentIndex)
	assert.Equal(t, 1, sink.count())
}

func TestInitialize_CopiesItems(t *testing.T) {
	sink := &recorder{}
	ctrl := New(sink, Options{})

	in := items(2)
	ctrl.Initialize(in)
	in[0].Title = "mutated"

	require.Len(t, sink.last, 2)
	sink.last[1].Title = "mutated too"

	state := ctrl.State()
	assert.Equal(t, "album 0", state.Items[0].Title)
	assert.Equal(t, "album 1", state.Items[1].Title)
}

func TestInitialize_ResetsIndex(t *testing.T) {
	ctrl := New(&recorder{}, Options{})
	ctrl.Initialize(items(4))
	ctrl.ScrollTo(3)
	ctrl.ScrollTo(7)
	assert.Equal(t, 3, ctrl.State().CurrentIndex)

	ctrl.Initialize(items(2))
	assert.Equal(t, 0, ctrl.State().CurrentIndex)
}

func TestNew_Defaults(t *testing.T) {
	ctrl := New(nil, Options{Interval: -1})
	assert.Equal(t, DefaultInterval, ctrl.interval)
	assert.Equal(t, DefaultSlotWidth, ctrl.slotWidth)

	// a nil sink is allowed
	ctrl.Initialize(items(2))
	ctrl.Next()
	assert.Equal(t, 1, ctrl.State().CurrentIndex)
}

func TestSinkFunc(t *testing.T) {
	var got int
	ctrl := New(SinkFunc(func(_ []model.AlbumSummary, active int) { got = active }), Options{})
	ctrl.Initialize(items(3))
	ctrl.Previous()
	assert.Equal(t, 2, got)
}
