package briansbrain

import (
	"sync"

	"lifeview/internal/core"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Brain implements Brian's Brain: firing cells always start dying, dying
// cells die, and dead cells fire when exactly two neighbors are firing.
// Only firing cells read as 1, so the compositor shades them alive.
type Brain struct {
	mu     sync.Mutex
	grid   *core.CellGrid
	radius int
	gen    uint64
}

// New creates an empty Brain with the provided dimensions.
func New(w, h, paintRadius int) *Brain {
	if paintRadius < 0 {
		paintRadius = 0
	}
	return &Brain{grid: core.NewCellGrid(w, h), radius: paintRadius}
}

// Name identifies the simulation.
func (b *Brain) Name() string { return "briansbrain" }

// Size returns the grid dimensions.
func (b *Brain) Size() core.Size { return b.grid.Size() }

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.grid.Current().Cells() }

// Generation returns the number of completed steps.
func (b *Brain) Generation() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gen
}

// Reset fires roughly one cell in eight. Seed 0 clears the board.
func (b *Brain) Reset(seed int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen = 0
	cells := b.grid.Current().Cells()
	if seed == 0 {
		b.grid.Current().Clear()
		return
	}
	core.NewRNG(seed).FillBinary(cells, 0.125)
}

// Clear kills every cell.
func (b *Brain) Clear() { b.Reset(0) }

// Paint fires the square around p, clipped to the grid.
func (b *Brain) Paint(p core.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur := b.grid.Current()
	cx, cy := cur.Clamp(p.X, p.Y)
	for y := cy - b.radius; y <= cy+b.radius; y++ {
		for x := cx - b.radius; x <= cx+b.radius; x++ {
			if cur.In(x, y) {
				cur.Cells()[cur.Index(x, y)] = stateOn
			}
		}
	}
}

// Step advances the automaton by one tick.
func (b *Brain) Step() {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, nxt := b.grid.Current(), b.grid.Next()
	src, dst := cur.Cells(), nxt.Cells()
	w, h := cur.W, cur.H
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := cur.Index(x, y)
			switch src[idx] {
			case stateOn:
				dst[idx] = stateDying
			case stateDying:
				dst[idx] = stateDead
			default:
				firing := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := cur.Wrap(x+dx, y+dy)
						if src[cur.Index(nx, ny)] == stateOn {
							firing++
						}
					}
				}
				dst[idx] = stateDead
				if firing == 2 {
					dst[idx] = stateOn
				}
			}
		}
	}
	b.grid.Swap()
	b.gen++
}

func init() {
	core.Register("briansbrain", func(size core.Size, opts core.Options) core.Automaton {
		return New(size.W, size.H, opts.PaintRadius)
	})
}
