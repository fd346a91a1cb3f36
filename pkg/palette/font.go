package palette

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font describes a fixed-width bitmap font: glyph cell dimensions, the
// baseline offset within a cell, and a per-character pixel mask (one bit
// per pixel, row-major, MSB first) the rasterizer stamps into the
// framebuffer. Only the printable ASCII range is populated; the VT102
// engine never emits control bytes as glyphs.
type Font struct {
	Width, Height int
	Ascent        int // baseline offset from the top of the cell
	masks         map[byte][]byte
}

// DefaultFont renders golang.org/x/image/font/basicfont's built-in 7x13
// face into a Font's bitmasks once at package init. Cell dimensions are
// measured off the face's own font.Face metrics (GlyphAdvance for width,
// Metrics().Height/.Ascent for the rest) since basicfont.Face only exposes
// them through the font.Face interface.
var DefaultFont = buildFont(basicfont.Face7x13)

func buildFont(face font.Face) *Font {
	w := 7
	if adv, ok := face.GlyphAdvance('M'); ok {
		if c := adv.Ceil(); c > 0 {
			w = c
		}
	}
	metrics := face.Metrics()
	h := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	f := &Font{
		Width:  w,
		Height: h,
		Ascent: ascent,
		masks:  make(map[byte][]byte, 95),
	}

	for ch := byte(' '); ch < 0x7f; ch++ {
		f.masks[ch] = rasterizeGlyph(face, rune(ch), w, h, ascent)
	}
	return f
}

// rasterizeGlyph draws a single rune with font.Drawer into a throwaway
// alpha mask, then packs the result into row-major bit rows (1 =
// foreground pixel).
func rasterizeGlyph(face font.Face, r rune, w, h, ascent int) []byte {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Alpha{A: 0xff}),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(string(r))

	rowBytes := (w + 7) / 8
	out := make([]byte, rowBytes*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.AlphaAt(x, y).A > 0x40 {
				out[y*rowBytes+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}
	return out
}

// Mask returns the glyph bitmask for ch, or the space glyph if ch has no
// printable representation (put_char never calls this with a control
// byte; see pkg/console).
func (f *Font) Mask(ch byte) []byte {
	if m, ok := f.masks[ch]; ok {
		return m
	}
	return f.masks[' ']
}

// RowBytes is the number of bytes per glyph scan line.
func (f *Font) RowBytes() int {
	return (f.Width + 7) / 8
}

// Set reports whether the glyph mask for ch has pixel (x,y) set.
func (f *Font) Set(ch byte, x, y int) bool {
	m := f.Mask(ch)
	rb := f.RowBytes()
	idx := y*rb + x/8
	if idx < 0 || idx >= len(m) {
		return false
	}
	return m[idx]&(0x80>>uint(x%8)) != 0
}
