package ui

import (
	"slices"
	"testing"

	"mad-life/internal/sims/life"
	"mad-life/pkg/patterns"
)

func TestLinesIncludeStatusAndParameters(t *testing.T) {
	cfg := life.DefaultConfig()
	cfg.Width, cfg.Height = 6, 6
	cfg.Density = 0
	sim, err := life.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	sim.Step()
	lines := Lines(sim)
	if lines[0] != "life 6x6" {
		t.Fatalf("title = %q", lines[0])
	}
	for _, want := range []string{"gen 0  pop 0", "stopped: all cells dead", "[World]", "Rule: B3/S23", "Patterns: -"} {
		if !slices.Contains(lines, want) {
			t.Fatalf("missing %q in %q", want, lines)
		}
	}

	cfg.Patterns = []patterns.Placement{{Name: "block", X: 1, Y: 1}}
	sim, _ = life.New(cfg)
	if lines := Lines(sim); slices.Contains(lines, "stopped: all cells dead") || !slices.Contains(lines, "gen 0  pop 4") {
		t.Fatalf("unexpected lines %q", lines)
	}
}
