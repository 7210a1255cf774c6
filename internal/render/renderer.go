//go:build ebiten

package render

import (
	"image/color"

	"mad-life/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter mirrors a Framebuffer into an ebiten image.
type GridPainter struct {
	fb    *Framebuffer
	img   *ebiten.Image
	dirty bool
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, on, off color.Color) *GridPainter {
	return &GridPainter{
		fb:    NewFramebuffer(w, h, on, off),
		img:   ebiten.NewImage(w, h),
		dirty: true,
	}
}

// Blit replaces the whole image with the provided cells.
func (gp *GridPainter) Blit(cells []uint8) error {
	if err := gp.fb.Blit(cells); err != nil {
		return err
	}
	gp.dirty = true
	return nil
}

// Apply paints only the cells in diff.
func (gp *GridPainter) Apply(diff grid.Diff) error {
	if err := gp.fb.Apply(diff); err != nil {
		return err
	}
	gp.dirty = true
	return nil
}

// Draw uploads pending changes and draws the image scaled onto dst.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	if gp.dirty {
		gp.img.WritePixels(gp.fb.Pixels())
		gp.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.fb.Size() }
