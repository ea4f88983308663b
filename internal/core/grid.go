package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *ByteGrid) In(x, y int) bool { return x >= 0 && x < g.W && y >= 0 && y < g.H }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ByteGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clamp pins the provided coordinates to the grid bounds.
func (g *ByteGrid) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, g.W-1), clampInt(y, 0, g.H-1)
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// CellGrid is a front/back pair of equally sized grids. Front is the readable
// generation, back is only written while the next generation is computed.
type CellGrid struct {
	front *ByteGrid
	back  *ByteGrid
}

// NewCellGrid allocates both buffers.
func NewCellGrid(w, h int) *CellGrid {
	return &CellGrid{front: NewByteGrid(w, h), back: NewByteGrid(w, h)}
}

// Size returns the grid dimensions.
func (c *CellGrid) Size() Size { return Size{W: c.front.W, H: c.front.H} }

// Current returns the readable buffer.
func (c *CellGrid) Current() *ByteGrid { return c.front }

// Next returns the write target of the generation in progress.
func (c *CellGrid) Next() *ByteGrid { return c.back }

// Swap promotes the back buffer to current.
func (c *CellGrid) Swap() { c.front, c.back = c.back, c.front }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
