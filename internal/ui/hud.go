//go:build ebiten

package ui

import (
	"image/color"

	"mad-life/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 6
	hudLineHeight = 14
	hudCharWidth  = 7
)

// HUD draws status and settings over the top-left corner. Tab toggles it.
type HUD struct {
	sim     core.Sim
	visible bool
	panel   *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation.
func NewHUD(sim core.Sim) *HUD {
	panel := ebiten.NewImage(1, 1)
	panel.Fill(color.RGBA{A: 0xb0})
	return &HUD{sim: sim, visible: true, panel: panel}
}

// Update handles the visibility toggle.
func (h *HUD) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		h.visible = !h.visible
	}
}

// Draw renders the panel onto screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible {
		return
	}
	lines := Lines(h.sim)
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width*hudCharWidth+2*hudPadding), float64(len(lines)*hudLineHeight+2*hudPadding))
	screen.DrawImage(h.panel, op)

	face := basicfont.Face7x13
	for i, l := range lines {
		text.Draw(screen, l, face, hudPadding, hudPadding+(i+1)*hudLineHeight-3, color.White)
	}
}
