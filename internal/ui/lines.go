package ui

import (
	"fmt"

	"mad-life/internal/core"
)

// Lines builds the HUD text for sim: a title, the live status when the sim
// reports one, then every configured parameter grouped by section.
func Lines(sim core.Sim) []string {
	size := sim.Size()
	lines := []string{fmt.Sprintf("%s %dx%d", sim.Name(), size.W, size.H)}
	if sp, ok := sim.(core.StatusProvider); ok {
		st := sp.Status()
		lines = append(lines, fmt.Sprintf("gen %d  pop %d", st.Generation, st.Population))
		if st.Halted {
			lines = append(lines, "stopped: "+st.Reason)
		}
	}
	if pp, ok := sim.(core.ParameterProvider); ok {
		for _, g := range pp.Parameters().Groups {
			lines = append(lines, "", "["+g.Name+"]")
			for _, p := range g.Params {
				v := p.Value
				if v == "" {
					v = "-"
				}
				lines = append(lines, fmt.Sprintf("%s: %s", p.Label, v))
			}
		}
	}
	return lines
}
