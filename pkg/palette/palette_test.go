package palette

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVGA16Size(t *testing.T) {
	require.Len(t, VGA16, Size)
}

func TestRGBBytesLength(t *testing.T) {
	require.Len(t, RGBBytes(), Size*3)
}

func TestRGBBytesStable(t *testing.T) {
	require.Equal(t, RGBBytes(), RGBBytes())
}

func TestDefaultFontSpaceIsBlank(t *testing.T) {
	f := DefaultFont
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			require.Falsef(t, f.Set(' ', x, y), "space glyph set at (%d,%d)", x, y)
		}
	}
}

func TestDefaultFontUnknownCharFallsBackToSpace(t *testing.T) {
	f := DefaultFont
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			require.Equal(t, f.Set(' ', x, y), f.Set(0x00, x, y))
		}
	}
}

func TestDefaultFontGlyphHasInk(t *testing.T) {
	f := DefaultFont
	any := false
	for y := 0; y < f.Height && !any; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Set('A', x, y) {
				any = true
				break
			}
		}
	}
	require.True(t, any, "glyph 'A' has no set pixels")
}
