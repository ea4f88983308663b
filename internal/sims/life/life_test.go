package life

import (
	"slices"
	"testing"

	"lifeview/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliveSet(l *Life) map[[2]int]bool {
	w := l.Size().W
	out := map[[2]int]bool{}
	for i, c := range l.Cells() {
		if c == 1 {
			out[[2]int{i % w, i / w}] = true
		}
	}
	return out
}

func set(l *Life, pts ...[2]int) {
	w := l.Size().W
	for _, p := range pts {
		l.Cells()[p[1]*w+p[0]] = 1
	}
}

func TestBlinkerOscillation(t *testing.T) {
	life := New(5, 5)
	set(life, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	life.Step()
	expects := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	if got := aliveSet(life); !equalSets(got, expects) {
		t.Fatalf("after first step alive=%v, expected %v", got, expects)
	}

	life.Step()
	expects = map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	if got := aliveSet(life); !equalSets(got, expects) {
		t.Fatalf("after second step alive=%v, expected %v", got, expects)
	}
	if life.Generation() != 2 {
		t.Fatalf("generation=%d, expected 2", life.Generation())
	}
}

func equalSets(a, b map[[2]int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func TestBlockStillLife(t *testing.T) {
	life := New(8, 8)
	set(life, [2]int{3, 3}, [2]int{4, 3}, [2]int{3, 4}, [2]int{4, 4})
	before := slices.Clone(life.Cells())
	for i := 0; i < 50; i++ {
		life.Step()
		require.Equal(t, before, life.Cells(), "step %d", i)
	}
}

func TestStepWrapsAtEdges(t *testing.T) {
	life := New(5, 5)
	set(life, [2]int{4, 2}, [2]int{0, 2}, [2]int{1, 2})

	life.Step()

	assert.Equal(t, map[[2]int]bool{{0, 1}: true, {0, 2}: true, {0, 3}: true}, aliveSet(life))
}

func TestStepDeterministicAcrossWorkers(t *testing.T) {
	serial := New(64, 48, WithWorkers(1))
	parallel := New(64, 48, WithWorkers(7))
	serial.Reset(1234)
	parallel.Reset(1234)
	require.Equal(t, serial.Cells(), parallel.Cells())

	replay := New(64, 48, WithWorkers(3))
	replay.Reset(1234)

	for i := 0; i < 40; i++ {
		serial.Step()
		parallel.Step()
		replay.Step()
		require.Equal(t, serial.Cells(), parallel.Cells(), "generation %d", i+1)
		require.Equal(t, serial.Cells(), replay.Cells(), "generation %d", i+1)
	}
}

func TestPaintVisibleImmediately(t *testing.T) {
	life := New(32, 32)
	life.Paint(core.Point{X: 10, Y: 10})

	want := map[[2]int]bool{}
	for y := 9; y <= 11; y++ {
		for x := 9; x <= 11; x++ {
			want[[2]int{x, y}] = true
		}
	}
	assert.Equal(t, want, aliveSet(life))
	assert.Equal(t, 9, life.Alive())
}

func TestPaintAfterStepSurvivesUntilNextStep(t *testing.T) {
	life := New(16, 16)
	life.Step()
	life.Paint(core.Point{X: 4, Y: 4})
	assert.Equal(t, 9, life.Alive())
	assert.Equal(t, uint64(1), life.Generation())
}

// Under B3/S23 a lone 3x3 block keeps its corners and grows one cell off
// the middle of each side; it does not vanish in a single generation.
func TestPaintedBlockFirstGeneration(t *testing.T) {
	life := New(32, 32)
	life.Paint(core.Point{X: 10, Y: 10})

	life.Step()

	want := map[[2]int]bool{
		{9, 9}: true, {11, 9}: true, {9, 11}: true, {11, 11}: true,
		{10, 8}: true, {10, 12}: true, {8, 10}: true, {12, 10}: true,
	}
	assert.Equal(t, want, aliveSet(life))
}

func TestIsolatedPaintDiesOut(t *testing.T) {
	life := New(32, 32, WithPaintRadius(0))
	life.Paint(core.Point{X: 10, Y: 10})
	require.Equal(t, 1, life.Alive())

	life.Step()

	assert.Zero(t, life.Alive())
}

func TestPaintAtEdgeIsClipped(t *testing.T) {
	life := New(8, 6)
	assert.NotPanics(t, func() {
		life.Paint(core.Point{X: 0, Y: 0})
		life.Paint(core.Point{X: 7, Y: 5})
	})
	want := map[[2]int]bool{
		{0, 0}: true, {1, 0}: true, {0, 1}: true, {1, 1}: true,
		{6, 4}: true, {7, 4}: true, {6, 5}: true, {7, 5}: true,
	}
	assert.Equal(t, want, aliveSet(life))

	life.Clear()
	life.Paint(core.Point{X: 100, Y: -3})
	assert.Equal(t, map[[2]int]bool{{6, 0}: true, {7, 0}: true, {6, 1}: true, {7, 1}: true}, aliveSet(life))
}

func TestResetSeedZeroClears(t *testing.T) {
	life := New(16, 16)
	life.Reset(99)
	assert.NotZero(t, life.Alive())
	life.Step()
	life.Reset(0)
	assert.Zero(t, life.Alive())
	assert.Zero(t, life.Generation())
}

func TestRegisteredVariants(t *testing.T) {
	for name, rule := range map[string]string{
		"life":     "B3/S23",
		"highlife": "B36/S23",
		"seeds":    "B2/S",
		"daynight": "B3678/S34678",
	} {
		factory, ok := core.Sims()[name]
		require.True(t, ok, name)
		sim := factory(core.Size{W: 4, H: 3}, core.Options{PaintRadius: 1})
		assert.Equal(t, name, sim.Name())
		assert.Equal(t, core.Size{W: 4, H: 3}, sim.Size())
		assert.Equal(t, rule, sim.(*Life).Rule().String())
	}
}

func TestRegistryRuleOverride(t *testing.T) {
	rule := core.MustParseRule("B36/S23")
	sim := core.Sims()["life"](core.Size{W: 8, H: 8}, core.Options{Rule: &rule, PaintRadius: 0})
	l := sim.(*Life)
	assert.Equal(t, "B36/S23", l.Rule().String())
	l.Paint(core.Point{X: 3, Y: 3})
	assert.Equal(t, 1, l.Alive())
}
