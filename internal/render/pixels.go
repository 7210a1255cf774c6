package render

import (
	"errors"
	"fmt"
	"image/color"

	"mad-life/pkg/core"
	"mad-life/pkg/grid"
)

var (
	// ErrSizeMismatch is returned when a full frame does not match the
	// framebuffer dimensions.
	ErrSizeMismatch = errors.New("render: cell buffer does not match surface size")
	// ErrOutOfSurface is returned when a diff names a cell the framebuffer
	// cannot address. It means the engine and renderer disagree on size.
	ErrOutOfSurface = errors.New("render: coordinate outside surface")
)

// Framebuffer keeps an RGBA image of a binary grid. Full frames replace
// every pixel; diffs touch only the cells that changed.
type Framebuffer struct {
	w, h int
	buf  []byte

	on, off color.Color
}

// NewFramebuffer allocates a w*h surface filled with the off color.
func NewFramebuffer(w, h int, on, off color.Color) *Framebuffer {
	fb := &Framebuffer{w: w, h: h, buf: make([]byte, 4*w*h), on: on, off: off}
	fillBinaryRGBA(fb.buf, make([]uint8, w*h), on, off)
	return fb
}

// Size returns the surface dimensions.
func (fb *Framebuffer) Size() (int, int) { return fb.w, fb.h }

// Pixels exposes the RGBA buffer.
func (fb *Framebuffer) Pixels() []byte { return fb.buf }

// Blit replaces the whole surface with a row-major 0/1 cell buffer.
func (fb *Framebuffer) Blit(cells []uint8) error {
	if len(cells) != fb.w*fb.h {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrSizeMismatch, len(cells), fb.w, fb.h)
	}
	fillBinaryRGBA(fb.buf, cells, fb.on, fb.off)
	return nil
}

// Apply paints born cells on and died cells off. The diff is checked in
// full before any pixel is written.
func (fb *Framebuffer) Apply(diff grid.Diff) error {
	var bad error
	check := func(c core.Coord) {
		if bad == nil && (c.X < 0 || c.Y < 0 || c.X >= fb.w || c.Y >= fb.h) {
			bad = fmt.Errorf("%w: %v on %dx%d", ErrOutOfSurface, c, fb.w, fb.h)
		}
	}
	diff.Born.Each(check)
	diff.Died.Each(check)
	if bad != nil {
		return bad
	}
	diff.Born.Each(func(c core.Coord) { fb.paint(c, fb.on) })
	diff.Died.Each(func(c core.Coord) { fb.paint(c, fb.off) })
	return nil
}

// Frame draws one generation, preferring the diff when there is one.
func (fb *Framebuffer) Frame(g grid.Grid, _ int, diff *grid.Diff) error {
	if s := g.Size(); s.W != fb.w || s.H != fb.h {
		return fmt.Errorf("%w: grid %dx%d, surface %dx%d", ErrSizeMismatch, s.W, s.H, fb.w, fb.h)
	}
	if diff != nil {
		return fb.Apply(*diff)
	}
	return fb.Blit(grid.Bytes(g))
}

func (fb *Framebuffer) paint(c core.Coord, col color.Color) {
	r, g, b, a := col.RGBA()
	base := (c.Y*fb.w + c.X) * 4
	fb.buf[base+0] = uint8(r >> 8)
	fb.buf[base+1] = uint8(g >> 8)
	fb.buf[base+2] = uint8(b >> 8)
	fb.buf[base+3] = uint8(a >> 8)
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i, c := range cells {
		base := i * 4
		if c != 0 {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
