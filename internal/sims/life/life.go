package life

import (
	"runtime"
	"sync"

	"lifeview/internal/core"

	"golang.org/x/sync/errgroup"
)

// Life runs a life-like automaton over a toroidal binary grid. Generations
// are computed from the current buffer into the next one and then swapped.
type Life struct {
	mu sync.Mutex

	name    string
	grid    *core.CellGrid
	rule    core.Rule
	workers int
	radius  int
	gen     uint64
}

// Option configures a Life at construction.
type Option func(*Life)

// WithRule selects the transition rule. The default is Conway's B3/S23.
func WithRule(r core.Rule) Option {
	return func(l *Life) { l.rule = r }
}

// WithName overrides the name reported by Name.
func WithName(name string) Option {
	return func(l *Life) { l.name = name }
}

// WithWorkers sets how many row bands are stepped concurrently.
func WithWorkers(n int) Option {
	return func(l *Life) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithPaintRadius sets the half-width of the square forced alive by Paint.
// Radius 0 paints a single cell.
func WithPaintRadius(r int) Option {
	return func(l *Life) {
		if r >= 0 {
			l.radius = r
		}
	}
}

// New returns an empty Life of the provided dimensions.
func New(w, h int, opts ...Option) *Life {
	l := &Life{
		name:    "life",
		grid:    core.NewCellGrid(w, h),
		rule:    core.Conway,
		workers: runtime.NumCPU(),
		radius:  1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return l.name }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return l.grid.Size() }

// Rule returns the active transition rule.
func (l *Life) Rule() core.Rule { return l.rule }

// Cells exposes the current generation. Callers must treat it as read-only.
func (l *Life) Cells() []uint8 { return l.grid.Current().Cells() }

// Generation returns how many steps have completed since the last reset.
func (l *Life) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Alive counts live cells in the current generation.
func (l *Life) Alive() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.grid.Current().Cells() {
		n += int(c)
	}
	return n
}

// Reset randomizes the board using the provided seed. Seed 0 clears it.
func (l *Life) Reset(seed int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen = 0
	if seed == 0 {
		l.grid.Current().Clear()
		return
	}
	core.NewRNG(seed).FillBinary(l.grid.Current().Cells(), 0.5)
}

// Clear kills every cell.
func (l *Life) Clear() { l.Reset(0) }

// Paint forces the square of cells around p alive in the current generation.
// p is clamped into the grid; the parts of the square that fall outside the
// grid are dropped rather than wrapped.
func (l *Life) Paint(p core.Point) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.grid.Current()
	cx, cy := cur.Clamp(p.X, p.Y)
	cells := cur.Cells()
	for y := cy - l.radius; y <= cy+l.radius; y++ {
		for x := cx - l.radius; x <= cx+l.radius; x++ {
			if cur.In(x, y) {
				cells[cur.Index(x, y)] = 1
			}
		}
	}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, nxt := l.grid.Current(), l.grid.Next()
	bands := l.workers
	if bands > cur.H {
		bands = cur.H
	}
	if bands <= 1 {
		l.stepRows(cur, nxt, 0, cur.H)
	} else {
		var g errgroup.Group
		for i := 0; i < bands; i++ {
			y0 := i * cur.H / bands
			y1 := (i + 1) * cur.H / bands
			g.Go(func() error {
				l.stepRows(cur, nxt, y0, y1)
				return nil
			})
		}
		_ = g.Wait()
	}
	l.grid.Swap()
	l.gen++
}

// stepRows writes rows [y0, y1) of the next generation.
func (l *Life) stepRows(cur, nxt *core.ByteGrid, y0, y1 int) {
	w, h := cur.W, cur.H
	src, dst := cur.Cells(), nxt.Cells()
	for y := y0; y < y1; y++ {
		up := ((y - 1 + h) % h) * w
		row := y * w
		down := ((y + 1) % h) * w
		for x := 0; x < w; x++ {
			left := (x - 1 + w) % w
			right := (x + 1) % w
			neighbors := int(src[up+left]) + int(src[up+x]) + int(src[up+right]) +
				int(src[row+left]) + int(src[row+right]) +
				int(src[down+left]) + int(src[down+x]) + int(src[down+right])
			dst[row+x] = 0
			if l.rule.Next(src[row+x] == 1, neighbors) {
				dst[row+x] = 1
			}
		}
	}
}

func init() {
	variants := []struct {
		name string
		rule string
	}{
		{"life", "B3/S23"},
		{"highlife", "B36/S23"},
		{"seeds", "B2/S"},
		{"daynight", "B3678/S34678"},
	}
	for _, v := range variants {
		rule := core.MustParseRule(v.rule)
		name := v.name
		core.Register(name, func(size core.Size, opts core.Options) core.Automaton {
			r := rule
			if opts.Rule != nil {
				r = *opts.Rule
			}
			return New(size.W, size.H,
				WithRule(r),
				WithName(name),
				WithPaintRadius(opts.PaintRadius),
				WithWorkers(opts.Workers),
			)
		})
	}
}
