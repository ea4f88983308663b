package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"lifeview/internal/core"
	"lifeview/internal/render"
)

// Config represents the command-line parameters for the application. Every
// field has a default so the visualizer starts without arguments.
type Config struct {
	Width       int
	Height      int
	Grid        int
	TPS         int
	Sim         string
	Rule        string
	Seed        int64
	PaintRadius int
	Workers     int
	CatchUp     int
	VSync       bool
	Format      string
	Images      int
	Title       string
	Debug       bool
}

// NewConfig returns a Config populated with the visualizer's defaults.
func NewConfig() *Config {
	return &Config{
		Width:       1024,
		Height:      1024,
		Grid:        512,
		TPS:         60,
		Sim:         "life",
		PaintRadius: 1,
		VSync:       true,
		Format:      render.RGBA8Srgb.String(),
		Images:      3,
		Title:       "Game Of Life",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.IntVar(&c.Grid, "grid", c.Grid, "cells per grid side")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation steps per second")
	fs.StringVar(&c.Sim, "sim", c.Sim, "automaton variant ("+strings.Join(core.SimNames(), ", ")+")")
	fs.StringVar(&c.Rule, "rule", c.Rule, "override the variant's rule, e.g. B36/S23")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random fill seed, 0 starts empty")
	fs.IntVar(&c.PaintRadius, "brush", c.PaintRadius, "paint radius in cells")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row bands stepped in parallel, 0 = one per CPU")
	fs.IntVar(&c.CatchUp, "catchup", c.CatchUp, "max steps per frame after a stall, 0 = one")
	fs.BoolVar(&c.VSync, "vsync", c.VSync, "present every frame in order")
	fs.StringVar(&c.Format, "format", c.Format, "surface pixel format (rgba8-unorm, rgba8-srgb, bgra8-unorm, bgra8-srgb)")
	fs.IntVar(&c.Images, "images", c.Images, "swapchain images")
	fs.StringVar(&c.Title, "title", c.Title, "window title label")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "enable debug logging")
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Grid <= 0 {
		errs = append(errs, fmt.Errorf("grid %d must be positive", c.Grid))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if _, ok := core.Sims()[c.Sim]; !ok {
		errs = append(errs, fmt.Errorf("unknown sim %q", c.Sim))
	}
	if c.Rule != "" {
		if _, err := core.ParseRule(c.Rule); err != nil {
			errs = append(errs, err)
		}
	}
	if c.PaintRadius < 0 {
		errs = append(errs, fmt.Errorf("brush %d must not be negative", c.PaintRadius))
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Images < 2 {
		errs = append(errs, fmt.Errorf("images %d: need at least 2", c.Images))
	}
	return errors.Join(errs...)
}
