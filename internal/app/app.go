//go:build ebiten

package app

import (
	"context"
	"fmt"
	"time"

	"lifeview/internal/driver"
	"lifeview/internal/render"
	"lifeview/internal/ui"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the frame driver to the ebiten.Game interface. ebiten owns the
// window and the event loop; each Update is one driver frame and each Draw
// copies the latest presented image to the screen.
type Game struct {
	ctx     context.Context
	p       *Pipeline
	overlay *ui.Overlay

	last time.Time
	w, h int
}

// New constructs a Game for the provided pipeline.
func New(ctx context.Context, p *Pipeline) (*Game, error) {
	if p.Swapchain.Format().BGR() {
		return nil, fmt.Errorf("%w: ebiten screens take RGBA bytes, not %s", render.ErrUnsupportedFormat, p.Swapchain.Format())
	}
	w, h := p.Swapchain.Size()
	return &Game{ctx: ctx, p: p, overlay: ui.NewOverlay(), w: w, h: h}, nil
}

// Window forwards title updates to the ebiten window.
type Window struct{}

// SetTitle implements driver.Window.
func (Window) SetTitle(title string) { ebiten.SetWindowTitle(title) }

// Update handles keys, gathers pointer input and runs one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	d := g.p.Driver
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		d.StepOnce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		d.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		d.Reset(time.Now().UnixNano())
	}

	now := time.Now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	cx, cy := ebiten.CursorPosition()
	in := driver.Input{
		Dt:          dt,
		Cursor:      mgl32.Vec2{float32(cx), float32(cy)},
		CursorValid: cx >= 0 && cy >= 0 && cx < g.w && cy < g.h,
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WindowW:     g.w,
		WindowH:     g.h,
	}
	d.Tick(g.ctx, in)

	g.overlay.Update(ui.Status{
		Sim:        g.p.Sim.Name(),
		Generation: g.p.Sim.Generation(),
		Paused:     d.Paused(),
		Stats:      d.Stats(),
	})
	return nil
}

// Draw copies the most recently presented frame to the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	img := g.p.Swapchain.Scanout()
	if img == nil || !img.Rect.Eq(screen.Bounds()) {
		return
	}
	screen.WritePixels(img.Pix)
	g.overlay.Draw(screen)
}

// Layout follows the window size and resizes the swapchain when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.p.Swapchain.Resize(outsideWidth, outsideHeight)
	}
	return g.w, g.h
}
