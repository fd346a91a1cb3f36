// Package palette holds the fixed 16-color VGA palette the console engine
// renders against, and the bitmap font the rasterizer stamps glyphs with.
package palette

import "image/color"

// Size is the number of entries in the palette. Foreground and background
// attribute nibbles each index into this range.
const Size = 16

// Index names, matching the classic ANSI low-intensity ordering.
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// VGA16 is the classic 16-entry VGA text-mode palette: the eight
// low-intensity colours followed by their bright variants.
var VGA16 = [Size]color.RGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff}, // black
	{R: 0x80, G: 0x00, B: 0x00, A: 0xff}, // maroon
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	{R: 0x80, G: 0x80, B: 0x00, A: 0xff}, // khaki
	{R: 0x00, G: 0x00, B: 0x80, A: 0xff}, // navy
	{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
	{R: 0x00, G: 0x80, B: 0x80, A: 0xff}, // aqua-green
	{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}, // light grey
	{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, // dark grey
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0x00, G: 0xff, B: 0x00, A: 0xff}, // light green
	{R: 0xff, G: 0xff, B: 0x00, A: 0xff}, // yellow
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0xff, G: 0x00, B: 0xff, A: 0xff}, // pink
	{R: 0x00, G: 0xff, B: 0xff, A: 0xff}, // light blue
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, // white
}

// RGBBytes flattens the palette into the packed triplet form RFB's
// SetColourMapEntries / vncproxy's indexed PixelFormat wants.
func RGBBytes() []byte {
	out := make([]byte, 0, Size*3)
	for _, c := range VGA16 {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}
