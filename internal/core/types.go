package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}

// Automaton is the contract the frame driver steps, paints and reads.
type Automaton interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Clear()
	Step()
	Paint(p Point)
	Cells() []uint8
	Generation() uint64
}

// Options tune an Automaton built through the registry. A nil Rule keeps
// the variant's own rule; Workers <= 0 lets the automaton choose.
type Options struct {
	Rule        *Rule
	PaintRadius int
	Workers     int
}

// Factory constructs an Automaton of the given grid size.
type Factory func(size Size, opts Options) Automaton

var sims = map[string]Factory{}

// Register adds an automaton factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available automaton factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames returns the registered names in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
