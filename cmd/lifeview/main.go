//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"lifeview/internal/app"
	"lifeview/internal/logging"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/life"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := logging.New("lifeview "+uuid.NewString()[:8], cfg.Debug)

	p, err := app.Build(cfg, app.Window{}, logger)
	if err != nil {
		log.Fatal(err)
	}
	game, err := app.New(context.Background(), p)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// One Update per displayed frame; the driver's clock does the fixed-rate gating.
	ebiten.SetTPS(ebiten.SyncWithFPS)
	ebiten.SetVsyncEnabled(cfg.VSync)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	st := p.Driver.Stats()
	logger.Infof("exit after %d frames, %d presented, %d skipped, %d steps", st.Frames, st.Presented, st.Skipped, st.Steps)
}
