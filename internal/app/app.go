//go:build ebiten

package app

import (
	"image/color"
	"time"

	"mad-life/internal/core"
	"mad-life/internal/render"
	"mad-life/internal/ui"
	"mad-life/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type diffProvider interface {
	LastDiff() (grid.Diff, bool)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, color.White, color.Black),
		hud:     ui.NewHUD(sim),
		scale:   scale,
		seed:    seed,
	}
	// Cells always matches the painter size for a freshly built sim.
	_ = g.painter.Blit(sim.Cells())
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) error {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	return g.painter.Blit(g.sim.Cells())
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}

	g.hud.Update()

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		return g.present()
	}
	return nil
}

// present pushes the newest generation to the painter. Size disagreements
// are returned so the game stops instead of drawing garbage.
func (g *Game) present() error {
	if dp, ok := g.sim.(diffProvider); ok {
		if diff, ok := dp.LastDiff(); ok {
			return g.painter.Apply(diff)
		}
	}
	return g.painter.Blit(g.sim.Cells())
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Draw(screen, g.scale)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
