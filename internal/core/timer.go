package core

import "time"

// FixedStep gates simulation updates to a steady ticks-per-second rate while
// the caller runs at whatever frame rate the host provides.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{}
	fs.SetTPS(tps)
	return fs
}

// SetTPS changes the tick rate. The accumulated backlog is kept.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Backlog returns the time accumulated but not yet consumed by a tick.
func (f *FixedStep) Backlog() time.Duration { return f.accumulator }

// Reset drops the backlog and the wall-clock reference.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// Accumulate adds elapsed time. Negative deltas are ignored.
func (f *FixedStep) Accumulate(dt time.Duration) {
	if dt > 0 {
		f.accumulator += dt
	}
}

// Due consumes one interval from the backlog when a full one is available.
// The surplus carries over to later polls.
func (f *FixedStep) Due() bool {
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Advance accumulates dt and reports whether a single tick is due. At most one
// tick fires per call; a backlog of several intervals drains over later calls.
func (f *FixedStep) Advance(dt time.Duration) bool {
	f.Accumulate(dt)
	return f.Due()
}

// Steps accumulates dt and returns how many ticks to run now, at most max.
// Anything beyond max stays in the backlog.
func (f *FixedStep) Steps(dt time.Duration, max int) int {
	f.Accumulate(dt)
	n := 0
	for n < max && f.Due() {
		n++
	}
	return n
}

// ShouldStep reports whether the simulation should advance by one tick,
// measuring the delta against the wall clock.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	return f.Advance(delta)
}
