//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line on top of the presented frame. F1 toggles it.
type Overlay struct {
	visible bool
	line    string
	bg      *ebiten.Image
}

// NewOverlay constructs a visible overlay.
func NewOverlay() *Overlay {
	o := &Overlay{visible: true}
	o.bg = ebiten.NewImage(1, 1)
	o.bg.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 200})
	return o
}

// Update handles the toggle key and caches the line to draw.
func (o *Overlay) Update(s Status) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.visible = !o.visible
	}
	o.line = StatusLine(s)
}

// Draw paints the status line.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.line == "" {
		return
	}
	face := basicfont.Face7x13
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(len(o.line)*7+8), 18)
	screen.DrawImage(o.bg, op)
	text.Draw(screen, o.line, face, 4, 13, color.RGBA{R: 220, G: 220, B: 230, A: 255})
}
