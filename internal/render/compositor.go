package render

import (
	"fmt"
	"image"

	"lifeview/internal/core"

	"golang.org/x/image/draw"
)

// Compositor shades the automaton's cells and scales them over a frame.
// The staging image is reused between frames; nothing else is kept.
type Compositor struct {
	format  Format
	staging *image.RGBA
}

// NewCompositor builds a compositor for destinations of the given format.
func NewCompositor(format Format) (*Compositor, error) {
	if !format.Supported() {
		return nil, fmt.Errorf("compositor: %w: %s", ErrUnsupportedFormat, format)
	}
	return &Compositor{format: format}, nil
}

// Format returns the destination format the compositor encodes for.
func (c *Compositor) Format() Format { return c.format }

// Compose writes a full-resolution frame into dst. Cells equal to 1 are
// shaded alive, everything else dead. dst bytes are laid out in dstFormat,
// which must match the format the compositor was built for.
func (c *Compositor) Compose(dst *image.RGBA, dstFormat Format, cells []uint8, size core.Size, alive, dead Color) error {
	if dstFormat != c.format {
		return fmt.Errorf("compositor: destination is %s, built for %s", dstFormat, c.format)
	}
	if len(cells) != size.W*size.H || size.W <= 0 || size.H <= 0 {
		return fmt.Errorf("compositor: %d cells for a %dx%d grid", len(cells), size.W, size.H)
	}
	if dst.Bounds().Empty() {
		return nil
	}
	if c.staging == nil || c.staging.Rect.Dx() != size.W || c.staging.Rect.Dy() != size.H {
		c.staging = image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	}
	fillBinary(c.staging.Pix, cells, alive.Encode(c.format), dead.Encode(c.format))
	// Src keeps alpha as-is instead of blending over the previous frame.
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), c.staging, c.staging.Bounds(), draw.Src, nil)
	return nil
}

// fillBinary converts binary cell data (0/1) into 4-byte pixels in buf.
func fillBinary(buf []byte, cells []uint8, on, off [4]byte) {
	for i, cell := range cells {
		px := off
		if cell == 1 {
			px = on
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}
