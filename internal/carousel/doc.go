// Package carousel implements the rotating showcase of featured albums.
//
// A Controller holds a fixed list of items and an active index. When
// auto-rotation is on it advances the index on a ticker and pushes every
// change to a Sink. User interaction pauses rotation; the end of the
// interaction resumes it.
//
//	ctrl := carousel.New(sink, carousel.Options{AutoRotate: true, Interval: 4 * time.Second})
//	ctrl.Initialize(latest)
//	defer ctrl.Dispose()
//
//	ctrl.PointerEnter() // hover pauses
//	ctrl.PointerLeave() // and leaving resumes
//
// # Dragging
//
// DragStart pauses rotation and records the pointer position. DragMove sets
// the offset to twice the distance moved (moving left scrolls forward).
// DragEnd snaps to the nearest slot, given Options.SlotWidth, and resumes.
//
// # Timers
//
// The controller owns at most one ticker goroutine. Pause and Dispose wait
// for it to exit, so no Sink call from rotation happens after they return.
package carousel
