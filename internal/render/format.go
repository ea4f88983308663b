package render

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupportedFormat is returned when a compositor is built for a pixel
// format it cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// Format is the byte layout and transfer function of a destination image.
type Format int

const (
	FormatUndefined Format = iota
	RGBA8Unorm
	RGBA8Srgb
	BGRA8Unorm
	BGRA8Srgb
)

var formatNames = map[Format]string{
	RGBA8Unorm: "rgba8-unorm",
	RGBA8Srgb:  "rgba8-srgb",
	BGRA8Unorm: "bgra8-unorm",
	BGRA8Srgb:  "bgra8-srgb",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Supported reports whether the compositor can encode f.
func (f Format) Supported() bool {
	_, ok := formatNames[f]
	return ok
}

// SRGB reports whether RGB channels are stored sRGB-encoded.
func (f Format) SRGB() bool { return f == RGBA8Srgb || f == BGRA8Srgb }

// BGR reports whether red and blue are swapped in memory.
func (f Format) BGR() bool { return f == BGRA8Unorm || f == BGRA8Srgb }

// ParseFormat resolves a format name such as "bgra8-srgb".
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatUndefined, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Color is a linear RGBA color with channels in [0, 1].
type Color [4]float32

var (
	// LifeRed and Transparent are the alive/dead shades the visualizer starts with.
	LifeRed     = Color{1, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
)

// Encode converts c to the 8-bit byte order of f.
func (c Color) Encode(f Format) [4]byte {
	var px [4]byte
	for i := 0; i < 3; i++ {
		v := clamp01(float64(c[i]))
		if f.SRGB() {
			v = linearToSRGB(v)
		}
		px[i] = quantize(v)
	}
	px[3] = quantize(clamp01(float64(c[3])))
	if f.BGR() {
		px[0], px[2] = px[2], px[0]
	}
	return px
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

func quantize(v float64) byte { return byte(math.Round(v * 255)) }

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
