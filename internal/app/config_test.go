package app

import (
	"context"
	"flag"
	"testing"

	"lifeview/internal/core"
	"lifeview/internal/driver"
	"lifeview/internal/logging"
	"lifeview/internal/render"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/life"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsNeedNoFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lifeview", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(nil))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Grid)
	assert.Equal(t, 60, cfg.TPS)
	assert.True(t, cfg.VSync)
}

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("lifeview", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-grid", "64", "-sim", "highlife", "-vsync=false", "-format", "bgra8-unorm", "-catchup", "3"}))
	assert.Equal(t, 64, cfg.Grid)
	assert.Equal(t, "highlife", cfg.Sim)
	assert.False(t, cfg.VSync)
	assert.Equal(t, 3, cfg.CatchUp)
	assert.NoError(t, cfg.Validate())
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Grid = 0
	cfg.Sim = "nope"
	cfg.Rule = "B9"
	cfg.Format = "r32f"
	cfg.Images = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRule)
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), `unknown sim "nope"`)
	assert.Contains(t, err.Error(), "grid 0")
}

func TestBuildRunsFrames(t *testing.T) {
	cfg := NewConfig()
	cfg.Width, cfg.Height, cfg.Grid = 64, 48, 32
	cfg.Rule = "B36/S23"
	cfg.Seed = 5

	p, err := Build(cfg, nil, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 32, H: 32}, p.Sim.Size())

	f := p.Driver.Tick(context.Background(), driver.Input{})
	assert.Equal(t, driver.Presented, f.State)
	img := p.Swapchain.Scanout()
	require.NotNil(t, img)
	assert.Equal(t, 64, img.Rect.Dx())
	assert.Equal(t, 48, img.Rect.Dy())
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Format = "rgb565"
	_, err := Build(cfg, nil, logging.NewNopLogger())
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
}
