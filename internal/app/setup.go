package app

import (
	"fmt"

	"lifeview/internal/core"
	"lifeview/internal/driver"
	"lifeview/internal/logging"
	"lifeview/internal/render"
	"lifeview/internal/surface"
)

// Pipeline is everything the frame loop needs, built once at startup.
type Pipeline struct {
	Driver    *driver.Driver
	Swapchain *surface.Swapchain
	Sim       core.Automaton
}

// Build validates cfg and assembles the automaton, compositor, swapchain and
// driver. Errors here are configuration errors and should abort startup.
func Build(cfg *Config, win driver.Window, log logging.Logger) (*Pipeline, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	comp, err := render.NewCompositor(format)
	if err != nil {
		return nil, err
	}

	opts := core.Options{PaintRadius: cfg.PaintRadius, Workers: cfg.Workers}
	if cfg.Rule != "" {
		rule, err := core.ParseRule(cfg.Rule)
		if err != nil {
			return nil, err
		}
		opts.Rule = &rule
	}
	sim := core.Sims()[cfg.Sim](core.Size{W: cfg.Grid, H: cfg.Grid}, opts)
	sim.Reset(cfg.Seed)

	swap := surface.New(cfg.Width, cfg.Height, format, cfg.Images)

	dcfg := driver.DefaultConfig()
	dcfg.Label = cfg.Title
	dcfg.TPS = cfg.TPS
	dcfg.CatchUp = cfg.CatchUp
	dcfg.VSync = cfg.VSync

	log.Infof("%s %dx%d grid, %dx%d %s surface, %d tps", sim.Name(), cfg.Grid, cfg.Grid, cfg.Width, cfg.Height, format, cfg.TPS)
	return &Pipeline{
		Driver:    driver.New(dcfg, sim, comp, swap, win, log),
		Swapchain: swap,
		Sim:       sim,
	}, nil
}
