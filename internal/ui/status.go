package ui

import (
	"fmt"
	"strings"

	"lifeview/internal/driver"
)

// Status is the snapshot the overlay prints in the top-left corner.
type Status struct {
	Sim        string
	Generation uint64
	Paused     bool
	Stats      driver.Stats
}

// StatusLine renders s as a single line.
func StatusLine(s Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  gen %d", s.Sim, s.Generation)
	if s.Paused {
		b.WriteString("  [paused]")
	}
	if s.Stats.Skipped > 0 {
		fmt.Fprintf(&b, "  skipped %d", s.Stats.Skipped)
	}
	return b.String()
}
