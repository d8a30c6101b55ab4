package carousel

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/handiism/albumlinks/internal/model"
)

// DefaultInterval is used when Options.Interval is not positive.
const DefaultInterval = 3 * time.Second

// DefaultSlotWidth is the width of one item plus the gap after it.
const DefaultSlotWidth = 280 + 16

// DragFactor scales pointer movement into scroll offset.
const DragFactor = 2

// Sink receives the items and the active index after every change.
//
// RenderCarousel may run on the rotation goroutine. It must not call Pause,
// Resume or Dispose synchronously.
type Sink interface {
	RenderCarousel(items []model.AlbumSummary, active int)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(items []model.AlbumSummary, active int)

// RenderCarousel calls f.
func (f SinkFunc) RenderCarousel(items []model.AlbumSummary, active int) {
	f(items, active)
}

// Options configures a Controller.
type Options struct {
	// AutoRotate enables rotation after Initialize and after interactions end.
	AutoRotate bool

	// Interval between rotations. Defaults to DefaultInterval.
	Interval time.Duration

	// SlotWidth is the distance between two items, in the same unit as the
	// drag positions. Defaults to DefaultSlotWidth.
	SlotWidth int

	Logger *slog.Logger
}

// State is a snapshot of the carousel.
type State struct {
	Items        []model.AlbumSummary
	CurrentIndex int

	// Rotating is true while the ticker is running.
	Rotating bool

	Dragging   bool
	DragOffset int
}

// Controller owns the carousel state and its rotation ticker.
type Controller struct {
	sink       Sink
	autoRotate bool
	interval   time.Duration
	slotWidth  int
	logger     *slog.Logger

	mu       sync.Mutex
	items    []model.AlbumSummary
	index    int
	disposed bool

	dragging   bool
	dragStartX int
	dragOffset int

	// stop and done belong to the running ticker goroutine; both nil when
	// rotation is stopped.
	stop chan struct{}
	done chan struct{}

	emitMu sync.Mutex
}

// New creates a Controller with no items.
func New(sink Sink, opts Options) *Controller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.SlotWidth <= 0 {
		opts.SlotWidth = DefaultSlotWidth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Controller{
		sink:       sink,
		autoRotate: opts.AutoRotate,
		interval:   opts.Interval,
		slotWidth:  opts.SlotWidth,
		logger:     opts.Logger,
	}
}

// Initialize replaces the items, resets the index to 0, renders, and starts
// rotation when there is something to rotate and auto-rotation is on.
func (c *Controller) Initialize(items []model.AlbumSummary) {
	c.stopTicker()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.items = cloneItems(items)
	c.index = 0
	c.dragging = false
	c.dragOffset = 0
	start := c.autoRotate && len(c.items) > 0 && c.stop == nil
	if start {
		c.startTicker()
	}

	c.logger.Debug("carousel initialized", slog.Int("items", len(items)), slog.Bool("rotating", start))
	c.emit()
}

// Next moves to the following item, wrapping around.
func (c *Controller) Next() {
	c.step(1)
}

// Previous moves to the preceding item, wrapping around.
func (c *Controller) Previous() {
	c.step(-1)
}

// ScrollTo makes index the active item. Out of range indexes are ignored,
// as is any call after Dispose.
func (c *Controller) ScrollTo(index int) {
	c.mu.Lock()
	if c.disposed || index < 0 || index >= len(c.items) {
		c.mu.Unlock()
		return
	}
	c.index = index
	c.emit()
}

func (c *Controller) step(delta int) {
	c.mu.Lock()
	if c.disposed || len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	c.index = wrap(c.index+delta, len(c.items))
	c.emit()
}

// Pause stops rotation. It returns after the ticker goroutine has exited.
func (c *Controller) Pause() {
	c.stopTicker()
}

// Resume (re)starts rotation. A running ticker is stopped first, so calling
// Resume repeatedly never stacks timers. Does nothing with no items or after
// Dispose.
func (c *Controller) Resume() {
	c.stopTicker()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || len(c.items) == 0 || c.stop != nil {
		return
	}
	c.startTicker()
}

// PointerEnter pauses rotation while the pointer is over the carousel.
func (c *Controller) PointerEnter() {
	c.Pause()
}

// PointerLeave resumes rotation if auto-rotation is on and no drag is in
// progress.
func (c *Controller) PointerLeave() {
	c.mu.Lock()
	dragging := c.dragging
	c.mu.Unlock()

	if !dragging {
		c.resumeByPolicy()
	}
}

// TouchStart pauses rotation and starts a drag at x.
func (c *Controller) TouchStart(x int) {
	c.DragStart(x)
}

// TouchEnd ends the drag and resumes rotation per policy.
func (c *Controller) TouchEnd() {
	c.DragEnd()
}

// DragStart pauses rotation and records the drag origin.
func (c *Controller) DragStart(x int) {
	c.Pause()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.dragStartX = x
	c.dragOffset = 0
}

// DragMove updates the drag offset for a pointer now at x.
func (c *Controller) DragMove(x int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	c.dragOffset = (c.dragStartX - x) * DragFactor
}

// DragEnd snaps to the slot nearest to the dragged position and resumes
// rotation per policy.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return
	}
	steps := int(math.Round(float64(c.dragOffset) / float64(c.slotWidth)))
	c.dragging = false
	c.dragOffset = 0

	if steps != 0 && len(c.items) > 0 && !c.disposed {
		c.index = wrap(c.index+steps, len(c.items))
		c.emit()
	} else {
		c.mu.Unlock()
	}

	c.resumeByPolicy()
}

func (c *Controller) resumeByPolicy() {
	if c.autoRotate {
		c.Resume()
	}
}

// Dispose stops rotation for good. Later Resume calls do nothing.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()

	c.stopTicker()
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Items:        cloneItems(c.items),
		CurrentIndex: c.index,
		Rotating:     c.stop != nil,
		Dragging:     c.dragging,
		DragOffset:   c.dragOffset,
	}
}

// startTicker must be called with mu held and no ticker running.
func (c *Controller) startTicker() {
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop, c.done = stop, done

	go func() {
		defer close(done)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				c.tick(stop)
			}
		}
	}()
}

// tick advances unless the ticker that fired has been stopped meanwhile.
func (c *Controller) tick(stop chan struct{}) {
	c.mu.Lock()
	if c.stop != stop || len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	c.index = wrap(c.index+1, len(c.items))
	c.emit()
}

// stopTicker must be called without mu held.
func (c *Controller) stopTicker() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// emit must be called with mu held; it releases it.
func (c *Controller) emit() {
	items := cloneItems(c.items)
	index := c.index

	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if c.sink != nil {
		c.sink.RenderCarousel(items, index)
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func cloneItems(items []model.AlbumSummary) []model.AlbumSummary {
	out := make([]model.AlbumSummary, len(items))
	copy(out, items)
	return out
}
