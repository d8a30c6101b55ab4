package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/albumlinks/internal/feed"
	"github.com/handiism/albumlinks/internal/model"
	"github.com/handiism/albumlinks/internal/showcase"
)

// Sink turns controller callbacks into Bubble Tea messages.
//
// Feed messages are never dropped: they are sent from command goroutines and
// wait for room in the queue. Carousel and progress messages are dropped when
// the queue is full, since the next one supersedes them anyway.
type Sink struct {
	events    chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewSink creates a Sink with a queue of the given size.
func NewSink(buffer int) *Sink {
	if buffer < 1 {
		buffer = 1
	}
	return &Sink{
		events: make(chan tea.Msg, buffer),
		done:   make(chan struct{}),
	}
}

// RenderFeed implements feed.Sink.
func (s *Sink) RenderFeed(items []model.AlbumSummary, mode feed.Mode) {
	s.send(FeedMsg{Items: items, Mode: mode})
}

// ReportError implements feed.Sink.
func (s *Sink) ReportError(message string) {
	s.send(ErrorMsg{Message: message})
}

// RenderCarousel implements carousel.Sink.
func (s *Sink) RenderCarousel(items []model.AlbumSummary, active int) {
	s.trySend(CarouselMsg{Items: items, Active: active})
}

// Progress forwards showcase progress events.
func (s *Sink) Progress(event showcase.ProgressEvent) {
	s.trySend(ProgressMsg{Event: event})
}

// Listen waits for the next message. It must be re-issued after every
// message it delivers. After Close it returns nil.
func (s *Sink) Listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.events:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// Close releases blocked senders and listeners.
func (s *Sink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Sink) send(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.done:
	}
}

func (s *Sink) trySend(msg tea.Msg) {
	select {
	case s.events <- msg:
	case <-s.done:
	default:
	}
}
