package surface

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"lifeview/internal/render"

	"github.com/google/uuid"
)

// ErrStaleTarget is returned when a frame target is presented or discarded
// after it was already consumed, or after the swapchain was recreated.
var ErrStaleTarget = errors.New("stale frame target")

// Reason classifies why an acquisition failed.
type Reason int

const (
	OutOfDate Reason = iota + 1
	Lost
	Timeout
)

func (r Reason) String() string {
	switch r {
	case OutOfDate:
		return "out of date"
	case Lost:
		return "surface lost"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// AcquireError is a recoverable failure to obtain a frame target.
type AcquireError struct {
	Reason Reason
	Err    error
}

func (e *AcquireError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("acquire: %s: %v", e.Reason, e.Err)
	}
	return "acquire: " + e.Reason.String()
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Is matches any *AcquireError with the same Reason.
func (e *AcquireError) Is(target error) bool {
	t, ok := target.(*AcquireError)
	return ok && t.Reason == e.Reason
}

// FrameTarget is the image one frame renders into. It is valid until it is
// presented or discarded and is never handed out twice.
type FrameTarget struct {
	ID     uuid.UUID
	Image  *image.RGBA
	Format render.Format

	slot  int
	epoch uint64
}

// Size returns the target dimensions.
func (t *FrameTarget) Size() (int, int) {
	return t.Image.Rect.Dx(), t.Image.Rect.Dy()
}

type slotState int

const (
	slotFree slotState = iota
	slotAcquired
	slotQueued
	slotDisplayed
)

// AcquireTimeout bounds how long Acquire waits for a free image.
const AcquireTimeout = 100 * time.Millisecond

// Swapchain is an in-memory ring of presentable images. The producer side
// acquires, renders and presents; the display side drains presented images
// through Scanout.
type Swapchain struct {
	mu      sync.Mutex
	format  render.Format
	w, h    int
	images  []*image.RGBA
	states  []slotState
	owners  []uuid.UUID
	queue   []int
	shown   int
	epoch   uint64
	stale   bool
	lost    bool
	freed   chan struct{}
	timeout time.Duration
}

// New creates a swapchain of count images (at least two) sized w x h.
func New(w, h int, format render.Format, count int) *Swapchain {
	if count < 2 {
		count = 2
	}
	s := &Swapchain{
		format:  format,
		shown:   -1,
		freed:   make(chan struct{}, 1),
		timeout: AcquireTimeout,
	}
	s.images = make([]*image.RGBA, count)
	s.states = make([]slotState, count)
	s.owners = make([]uuid.UUID, count)
	s.recreate(w, h)
	return s
}

func (s *Swapchain) recreate(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	s.w, s.h = w, h
	for i := range s.images {
		s.images[i] = image.NewRGBA(image.Rect(0, 0, w, h))
		s.states[i] = slotFree
		s.owners[i] = uuid.Nil
	}
	s.queue = s.queue[:0]
	s.shown = -1
	s.epoch++
	s.stale = false
	s.signal()
}

// Format returns the pixel format of every image.
func (s *Swapchain) Format() render.Format { return s.format }

// Size returns the current image dimensions.
func (s *Swapchain) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// Resize marks the swapchain out of date. The next Acquire fails with
// OutOfDate and rebuilds the images at the new size.
func (s *Swapchain) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w == s.w && h == s.h && !s.stale {
		return
	}
	s.w, s.h = w, h
	s.stale = true
}

// Lose simulates losing the underlying surface. Acquire fails until Recover.
func (s *Swapchain) Lose() {
	s.mu.Lock()
	s.lost = true
	s.mu.Unlock()
}

// Recover makes a lost surface usable again; images are recreated.
func (s *Swapchain) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost {
		s.lost = false
		s.recreate(s.w, s.h)
	}
}

// Acquire hands out the next free image, waiting while every image is in flight.
func (s *Swapchain) Acquire(ctx context.Context) (*FrameTarget, error) {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	for {
		t, err := s.tryAcquire()
		if t != nil || err != nil {
			return t, err
		}
		select {
		case <-s.freed:
		case <-timer.C:
			return nil, &AcquireError{Reason: Timeout}
		case <-ctx.Done():
			return nil, &AcquireError{Reason: Timeout, Err: ctx.Err()}
		}
	}
}

func (s *Swapchain) tryAcquire() (*FrameTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost {
		return nil, &AcquireError{Reason: Lost}
	}
	if s.stale {
		s.recreate(s.w, s.h)
		return nil, &AcquireError{Reason: OutOfDate}
	}
	for i, st := range s.states {
		if st != slotFree {
			continue
		}
		id := uuid.New()
		s.states[i] = slotAcquired
		s.owners[i] = id
		return &FrameTarget{ID: id, Image: s.images[i], Format: s.format, slot: i, epoch: s.epoch}, nil
	}
	return nil, nil
}

func (s *Swapchain) owned(t *FrameTarget) bool {
	return t != nil && t.epoch == s.epoch && s.states[t.slot] == slotAcquired && s.owners[t.slot] == t.ID
}

// Present queues t for display. With vsync every presented frame is shown in
// order; without it, frames not yet scanned out are dropped in favour of t.
func (s *Swapchain) Present(t *FrameTarget, vsync bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned(t) {
		return ErrStaleTarget
	}
	if !vsync {
		for _, slot := range s.queue {
			s.release(slot)
		}
		s.queue = s.queue[:0]
	}
	s.states[t.slot] = slotQueued
	s.queue = append(s.queue, t.slot)
	return nil
}

// Discard returns an acquired image without presenting it.
func (s *Swapchain) Discard(t *FrameTarget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owned(t) {
		return ErrStaleTarget
	}
	s.release(t.slot)
	return nil
}

// Scanout returns the image the display should show: the oldest queued frame
// if there is one, otherwise the one shown last. Nil before the first present.
func (s *Swapchain) Scanout() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]
		if s.shown >= 0 {
			s.release(s.shown)
		}
		s.states[next] = slotDisplayed
		s.shown = next
	}
	if s.shown < 0 {
		return nil
	}
	return s.images[s.shown]
}

// Pending returns how many presented frames wait for scanout.
func (s *Swapchain) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

func (s *Swapchain) release(slot int) {
	s.states[slot] = slotFree
	s.owners[slot] = uuid.Nil
	s.signal()
}

func (s *Swapchain) signal() {
	select {
	case s.freed <- struct{}{}:
	default:
	}
}
