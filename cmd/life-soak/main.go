package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"lifeview/internal/app"
	"lifeview/internal/driver"
	"lifeview/internal/logging"
	_ "lifeview/internal/sims/briansbrain"
	_ "lifeview/internal/sims/life"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// profile describes the host frame timing a scenario simulates.
type profile struct {
	name        string
	fps         float64
	jitter      float64 // fraction of the frame time, uniformly +-
	stallEvery  int
	stallFrames int
	resizeEvery int
	loseEvery   int
}

func (p profile) String() string {
	return fmt.Sprintf("%s fps=%.0f jitter=%.2f stall=%d/%d resize=%d lose=%d",
		p.name, p.fps, p.jitter, p.stallFrames, p.stallEvery, p.resizeEvery, p.loseEvery)
}

type result struct {
	profile  profile
	stats    driver.Stats
	expected uint64
	alive    int
	gen      uint64
	elapsed  time.Duration
}

func main() {
	cfg := app.NewConfig()
	cfg.Width, cfg.Height, cfg.Grid = 256, 256, 128
	cfg.Seed = 42
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 600, "frames to run per scenario")
	parallel := flag.Int("parallel", runtime.NumCPU(), "scenarios run at once")
	flag.Parse()

	logger := logging.NewNopLogger()
	if cfg.Debug {
		logger = logging.New("life-soak", true)
	}

	profiles := []profile{
		{name: "steady60", fps: 60},
		{name: "steady144", fps: 144},
		{name: "slow30", fps: 30},
		{name: "jitter", fps: 75, jitter: 0.4},
		{name: "stalls", fps: 60, stallEvery: 90, stallFrames: 20},
		{name: "resizing", fps: 60, resizeEvery: 45},
		{name: "lossy", fps: 60, jitter: 0.2, loseEvery: 60},
	}

	fmt.Printf("Soaking %d profiles (%d at once, %d frames, catchup=%d)\n", len(profiles), *parallel, *frames, cfg.CatchUp)

	results := make([]result, len(profiles))
	var g errgroup.Group
	g.SetLimit(max(*parallel, 1))
	for i, prof := range profiles {
		g.Go(func() error {
			res, err := run(*cfg, prof, *frames, logger)
			if err != nil {
				return fmt.Errorf("%s: %w", prof.name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].profile.name < results[j].profile.name })
	for _, r := range results {
		drift := int64(r.stats.Steps) - int64(r.expected)
		fmt.Printf("%-10s presented=%d skipped=%d steps=%d expected=%d drift=%+d gen=%d alive=%d sim-time=%s\n  %s\n",
			r.profile.name, r.stats.Presented, r.stats.Skipped, r.stats.Steps, r.expected, drift,
			r.gen, r.alive, r.elapsed.Round(time.Millisecond), r.profile)
	}
}

func run(cfg app.Config, prof profile, frames int, logger logging.Logger) (result, error) {
	p, err := app.Build(&cfg, nil, logger)
	if err != nil {
		return result{}, err
	}
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(len(prof.name))))
	base := time.Duration(float64(time.Second) / prof.fps)
	interval := time.Second / time.Duration(cfg.TPS)

	var elapsed time.Duration
	ctx := context.Background()
	w, h := cfg.Width, cfg.Height
	for f := 0; f < frames; f++ {
		dt := base
		if prof.jitter > 0 {
			dt = time.Duration(float64(base) * (1 + prof.jitter*(2*rng.Float64()-1)))
		}
		if prof.stallEvery > 0 && f > 0 && f%prof.stallEvery == 0 {
			dt += time.Duration(prof.stallFrames) * base
		}
		elapsed += dt

		if prof.resizeEvery > 0 && f > 0 && f%prof.resizeEvery == 0 {
			w, h = h+16, w
			p.Swapchain.Resize(w, h)
		}
		if prof.loseEvery > 0 && f > 0 && f%prof.loseEvery == 0 {
			p.Swapchain.Lose()
		}
		if prof.loseEvery > 0 && f > 0 && f%prof.loseEvery == 2 {
			p.Swapchain.Recover()
		}

		// Trace a circle with the button held to exercise painting.
		angle := 2 * math.Pi * float64(f) / 120
		in := driver.Input{
			Dt:          dt,
			Cursor:      mgl32.Vec2{float32(w) * (0.5 + 0.3*float32(math.Cos(angle))), float32(h) * (0.5 + 0.3*float32(math.Sin(angle)))},
			CursorValid: true,
			Pressed:     f%4 == 0,
			WindowW:     w,
			WindowH:     h,
		}
		p.Driver.Tick(ctx, in)
		p.Swapchain.Scanout()
	}

	return result{
		profile:  prof,
		stats:    p.Driver.Stats(),
		expected: uint64(elapsed / interval),
		alive:    countAlive(p.Sim.Cells()),
		gen:      p.Sim.Generation(),
		elapsed:  elapsed,
	}, nil
}

func countAlive(cells []uint8) int {
	n := 0
	for _, c := range cells {
		if c == 1 {
			n++
		}
	}
	return n
}
