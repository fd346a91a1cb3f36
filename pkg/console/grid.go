// Package console maintains a character cell grid and its pixel
// framebuffer in lockstep: every primitive edit (put-char, insert/delete
// line, insert/delete characters, scroll, clear, reset, selection toggle)
// updates both representations and reports the changed pixel region to a
// Surface so remote viewers receive incremental updates.
package console

import (
	"fmt"

	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
)

// Cell holds one grid position: a printable byte (or space) and a packed
// attribute (low nibble foreground index, high nibble background index).
type Cell struct {
	Ch   byte
	Attr byte
}

func packAttr(fg, bg byte) byte { return (fg & 0x0f) | (bg&0x0f)<<4 }

func (c Cell) Fg() byte { return c.Attr & 0x0f }
func (c Cell) Bg() byte { return (c.Attr >> 4) & 0x0f }

// DefaultFg/DefaultBg are the VT102 reset colours.
const (
	DefaultFg byte = 7
	DefaultBg byte = 0
)

// Grid owns the character cell grid, the pixel framebuffer, the cursor,
// the scroll region and the selection. Grid itself takes no mutex: all
// callers run inside the session-wide critical section owned by
// pkg/bridge, so exported methods assume that lock is already held.
type Grid struct {
	W, H   int
	Font   *palette.Font
	CW, CH int // glyph cell pixel dimensions

	cells []Cell // row-major, len W*H
	fb    []byte // palette-index pixels, row-major, len (W*CW)*(H*CH)

	X, Y int

	cursorDrawn        bool
	cursorSuppressed   bool
	cx1, cy1, cx2, cy2 int // cursor XOR bar within a cell

	Top, Bottom     int // scroll region [Top, Bottom)
	WrapBottomToTop bool

	MarkStart, MarkEnd int
	Active             bool
	Selection          []byte

	Surface Surface
}

// New allocates a Grid of w x h cells rendered with font f. A bad size is
// the only reportable failure; slice allocation itself can only fail by
// panicking on OOM, which is fatal for session init anyway.
func New(w, h int, f *palette.Font) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("console: invalid grid size %dx%d", w, h)
	}
	if f == nil {
		f = palette.DefaultFont
	}

	g := &Grid{
		W: w, H: h,
		Font:    f,
		CW:      f.Width,
		CH:      f.Height,
		cells:   make([]Cell, w*h),
		fb:      make([]byte, w*f.Width*h*f.Height),
		Top:     0,
		Bottom:  h,
		Surface: nullSurface{},
	}

	// The text cursor is a horizontal bar near the baseline:
	// x in [cw/8, 7cw/8), y in [ch-1-ch/8, ch-1).
	g.cx1 = g.CW / 8
	g.cx2 = g.CW * 7 / 8
	g.cy1 = g.CH - 1 - g.CH/8
	g.cy2 = g.CH - 1
	if g.cy1 < 0 {
		g.cy1 = 0
	}
	if g.cy2 <= g.cy1 {
		g.cy2 = g.cy1 + 1
	}

	g.Reset()
	return g, nil
}

// Wpix/Hpix are the framebuffer's pixel dimensions.
func (g *Grid) Wpix() int { return g.W * g.CW }
func (g *Grid) Hpix() int { return g.H * g.CH }

// Framebuffer returns the live palette-index pixel buffer. Callers must
// hold the session lock while reading it if a concurrent mutation could be
// in flight; pkg/rfbsurface reads it only inside the event pump's critical
// section.
func (g *Grid) Framebuffer() []byte { return g.fb }

// CellAt returns the cell at (x,y); used by selection extraction and
// tests. Panics on out-of-range input, matching Go slice semantics.
func (g *Grid) CellAt(x, y int) Cell { return g.cells[y*g.W+x] }

func (g *Grid) setCell(x, y int, c Cell) { g.cells[y*g.W+x] = c }

// Reset clears the grid to spaces + default attribute, clears the
// framebuffer to the default background, and resets the cursor and scroll
// region.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{Ch: ' ', Attr: packAttr(DefaultFg, DefaultBg)}
	}
	for i := range g.fb {
		g.fb[i] = DefaultBg
	}
	g.X, g.Y = 0, 0
	g.Top, g.Bottom = 0, g.H
	g.cursorDrawn = false
	g.cursorSuppressed = false
	// The full-framebuffer wipe above already erased any selection
	// highlight; toggling the marked cells back would reintroduce it.
	g.Active = false
	g.Surface.DirtyRect(0, 0, g.Wpix(), g.Hpix())
}
