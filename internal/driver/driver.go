package driver

import (
	"context"
	"fmt"
	"time"

	"lifeview/internal/core"
	"lifeview/internal/logging"
	"lifeview/internal/render"
	"lifeview/internal/surface"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the presentation side of a frame: where targets come from and
// where finished targets go.
type Surface interface {
	Acquire(ctx context.Context) (*surface.FrameTarget, error)
	Present(t *surface.FrameTarget, vsync bool) error
	Discard(t *surface.FrameTarget) error
}

// Window receives the per-frame title update.
type Window interface {
	SetTitle(title string)
}

// State is the furthest point a frame reached.
type State int

const (
	Idle State = iota
	Acquiring
	Failed
	Acquired
	Stepped
	Composited
	Presented
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Acquiring:
		return "acquiring"
	case Failed:
		return "failed"
	case Acquired:
		return "acquired"
	case Stepped:
		return "stepped"
	case Composited:
		return "composited"
	case Presented:
		return "presented"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Input is what the window reports for one frame. Cursor is in window pixels
// and only meaningful when CursorValid is set.
type Input struct {
	Dt          time.Duration
	Cursor      mgl32.Vec2
	CursorValid bool
	Pressed     bool
	WindowW     int
	WindowH     int
}

// Frame summarizes one call to Tick.
type Frame struct {
	State   State
	Steps   int
	Painted bool
	Title   string
	Err     error
}

// Stats counts frame outcomes since the driver was created.
type Stats struct {
	Frames          uint64
	Presented       uint64
	Skipped         uint64
	PresentFailures uint64
	Steps           uint64
	Paints          uint64
}

// Config holds the knobs of the per-frame sequence.
type Config struct {
	Label string
	TPS   int
	// CatchUp is the most simulation steps one frame may run to drain a
	// backlog. Zero or one means a single step per frame.
	CatchUp int
	VSync   bool
	Alive   render.Color
	Dead    render.Color
}

// DefaultConfig mirrors the visualizer's startup settings.
func DefaultConfig() Config {
	return Config{
		Label: "Game Of Life",
		TPS:   60,
		VSync: true,
		Alive: render.LifeRed,
		Dead:  render.Transparent,
	}
}

// Driver owns the per-frame orchestration. It is not safe for concurrent use;
// one goroutine calls Tick per displayed frame.
type Driver struct {
	cfg     Config
	clock   *core.FixedStep
	sim     core.Automaton
	comp    *render.Compositor
	surface Surface
	window  Window
	log     logging.Logger

	paused   bool
	stepOnce bool
	stats    Stats
}

// New wires a driver. A nil window or logger is replaced by a no-op.
func New(cfg Config, sim core.Automaton, comp *render.Compositor, surf Surface, win Window, log logging.Logger) *Driver {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if win == nil {
		win = nopWindow{}
	}
	return &Driver{
		cfg:     cfg,
		clock:   core.NewFixedStep(cfg.TPS),
		sim:     sim,
		comp:    comp,
		surface: surf,
		window:  win,
		log:     log,
	}
}

// Sim returns the automaton being driven.
func (d *Driver) Sim() core.Automaton { return d.sim }

// Stats returns a copy of the frame counters.
func (d *Driver) Stats() Stats { return d.stats }

// Paused reports whether scheduled steps are suspended.
func (d *Driver) Paused() bool { return d.paused }

// SetPaused suspends or resumes scheduled steps. The clock backlog is dropped
// on resume so a long pause does not turn into a burst of steps.
func (d *Driver) SetPaused(paused bool) {
	if d.paused && !paused {
		d.clock.Reset()
	}
	d.paused = paused
}

// TogglePause flips the paused state.
func (d *Driver) TogglePause() { d.SetPaused(!d.paused) }

// StepOnce requests exactly one step on the next presented frame, even while paused.
func (d *Driver) StepOnce() { d.stepOnce = true }

// Reset reseeds the automaton; seed 0 clears it.
func (d *Driver) Reset(seed int64) {
	d.sim.Reset(seed)
	d.clock.Reset()
	d.log.Infof("reset %s with seed %d", d.sim.Name(), seed)
}

// Clear kills every cell.
func (d *Driver) Clear() { d.sim.Clear() }

// Tick runs one frame: paint from input, title, then acquire, optionally
// step, composite and present. Acquisition failures skip the frame and are
// not returned; they show up in the Frame and in Stats.
func (d *Driver) Tick(ctx context.Context, in Input) Frame {
	d.stats.Frames++
	f := Frame{State: Idle}

	if p, ok := d.paintTarget(in); ok {
		d.sim.Paint(p)
		d.stats.Paints++
		f.Painted = true
	}

	f.Title = Title(d.cfg.Label, in.Dt)
	d.window.SetTitle(f.Title)

	d.clock.Accumulate(in.Dt)

	f.State = Acquiring
	target, err := d.surface.Acquire(ctx)
	if err != nil {
		d.stats.Skipped++
		d.log.Warnf("failed to start frame: %v", err)
		f.State, f.Err = Failed, err
		return f
	}
	f.State = Acquired

	if steps := d.dueSteps(); steps > 0 {
		for i := 0; i < steps; i++ {
			d.sim.Step()
		}
		d.stats.Steps += uint64(steps)
		f.Steps = steps
		f.State = Stepped
	}

	if err := d.comp.Compose(target.Image, target.Format, d.sim.Cells(), d.sim.Size(), d.cfg.Alive, d.cfg.Dead); err != nil {
		d.log.Errorf("compose: %v", err)
		if derr := d.surface.Discard(target); derr != nil {
			d.log.Debugf("discard after compose failure: %v", derr)
		}
		d.stats.Skipped++
		f.State, f.Err = Failed, err
		return f
	}
	f.State = Composited

	if err := d.surface.Present(target, d.cfg.VSync); err != nil {
		d.stats.PresentFailures++
		d.log.Errorf("present: %v", err)
		f.Err = err
		return f
	}
	d.stats.Presented++
	f.State = Presented
	return f
}

func (d *Driver) dueSteps() int {
	if d.stepOnce {
		d.stepOnce = false
		if d.paused {
			return 1
		}
	}
	if d.paused {
		return 0
	}
	if d.cfg.CatchUp > 1 {
		return d.clock.Steps(0, d.cfg.CatchUp)
	}
	if d.clock.Due() {
		return 1
	}
	return 0
}

// paintTarget maps the cursor to a grid cell when the primary button is held.
func (d *Driver) paintTarget(in Input) (core.Point, bool) {
	if !in.Pressed || !in.CursorValid || in.WindowW <= 0 || in.WindowH <= 0 {
		return core.Point{}, false
	}
	norm := mgl32.Vec2{
		mgl32.Clamp(in.Cursor.X()/float32(in.WindowW), 0, 1),
		mgl32.Clamp(in.Cursor.Y()/float32(in.WindowH), 0, 1),
	}
	size := d.sim.Size()
	x := int(float32(size.W) * norm.X())
	y := int(float32(size.H) * norm.Y())
	return core.Point{X: min(x, size.W-1), Y: min(y, size.H-1)}, true
}

// Title formats the window title: the label followed by frames per second
// with two decimals.
func Title(label string, dt time.Duration) string {
	fps := 0.0
	if dt > 0 {
		fps = 1 / dt.Seconds()
	}
	return fmt.Sprintf("%s %.2f", label, fps)
}

type nopWindow struct{}

func (nopWindow) SetTitle(string) {}
