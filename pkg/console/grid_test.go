package console

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
)

func newTestGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h, palette.DefaultFont)
	require.NoError(t, err)
	return g
}

// renderCell reproduces what paintCell would have written for a cell,
// letting the agreement test re-render every cell independently and
// compare against the live framebuffer.
func renderCell(g *Grid, x, y int, c Cell) []byte {
	out := make([]byte, g.CW*g.CH)
	for row := 0; row < g.CH; row++ {
		for col := 0; col < g.CW; col++ {
			px := c.Bg()
			if g.Font.Set(c.Ch, col, row) {
				px = c.Fg()
			}
			out[row*g.CW+col] = px
		}
	}
	return out
}

// requireAgreement asserts every cell's framebuffer rectangle matches its
// independent rendering; callers hide the cursor first since the XOR bar
// is an overlay, not part of any cell.
func requireAgreement(t *testing.T, g *Grid) {
	t.Helper()
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := g.CellAt(x, y)
			want := renderCell(g, x, y, c)
			x0, y0 := x*g.CW, y*g.CH
			wpix := g.Wpix()
			got := make([]byte, 0, len(want))
			for row := 0; row < g.CH; row++ {
				base := (y0+row)*wpix + x0
				got = append(got, g.fb[base:base+g.CW]...)
			}
			require.Equalf(t, want, got, "cell (%d,%d) mismatch", x, y)
		}
	}
}

func TestGridFramebufferAgreement(t *testing.T) {
	g := newTestGrid(t, 10, 4)
	for _, ch := range []byte("Hello, World") {
		g.PutChar(ch, 3, 0)
	}
	g.HideCursor()
	requireAgreement(t, g)
}

// Wrapping at the bottom of a narrowed scroll region scrolls via the
// block-move primitives while the cursor is transiently parked below the
// region; no cursor bar may be left behind on that row.
func TestScrollInsideRegionKeepsCursorUnique(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	g.SetScrollRegion(1, 3) // rows [0,3)
	g.X, g.Y = 0, 2

	g.PutChar('\n', DefaultFg, DefaultBg)

	require.True(t, g.CursorDrawn())
	require.Equal(t, 0, g.X)
	require.Equal(t, 2, g.Y)

	wpix := g.Wpix()
	for y := 3 * g.CH; y < g.Hpix(); y++ {
		for x := 0; x < wpix; x++ {
			require.Equalf(t, DefaultBg, g.fb[y*wpix+x], "stray pixel below region at (%d,%d)", x, y)
		}
	}

	g.HideCursor()
	requireAgreement(t, g)
}

func TestCursorUniqueness(t *testing.T) {
	g := newTestGrid(t, 10, 4)
	require.False(t, g.CursorDrawn())
	g.DrawCursor()
	require.True(t, g.CursorDrawn())
	g.DrawCursor() // idempotent
	require.True(t, g.CursorDrawn())
	g.HideCursor()
	require.False(t, g.CursorDrawn())
}

func TestScrollRegionContainment(t *testing.T) {
	g := newTestGrid(t, 5, 10)
	g.SetScrollRegion(3, 8) // rows [2,8)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.setCell(x, y, Cell{Ch: byte('a' + y), Attr: packAttr(DefaultFg, DefaultBg)})
		}
	}
	before := append([]Cell(nil), g.cells...)

	g.Scroll(1)

	for y := 0; y < g.Top; y++ {
		for x := 0; x < g.W; x++ {
			require.Equalf(t, before[y*g.W+x], g.CellAt(x, y), "row %d outside region was modified", y)
		}
	}
	for y := g.Bottom; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			require.Equalf(t, before[y*g.W+x], g.CellAt(x, y), "row %d outside region was modified", y)
		}
	}
}

func TestBlockMoveEquivalence(t *testing.T) {
	g := newTestGrid(t, 5, 10)
	// Insert pushes the bottom k rows of the region off; the round trip
	// restores the grid when those rows are blank, so only fill above them.
	for y := 0; y < g.H-3; y++ {
		for x := 0; x < g.W; x++ {
			g.setCell(x, y, Cell{Ch: byte('a' + y), Attr: packAttr(DefaultFg, DefaultBg)})
		}
	}
	before := append([]Cell(nil), g.cells...)

	g.InsertLines(2, 3)
	g.DeleteLines(2, 3)

	require.Equal(t, before, g.cells)
}

func TestSelectionRoundTrip(t *testing.T) {
	g := newTestGrid(t, 10, 2)
	for i, ch := range []byte("abcdefghij") {
		g.setCell(i, 0, Cell{Ch: ch, Attr: packAttr(DefaultFg, DefaultBg)})
	}

	g.BeginMark(2)
	g.ExtendMark(6)
	g.EndMark()

	lo, hi := 2, 6
	want := make([]byte, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		want = append(want, g.CellAt(p%g.W, p/g.W).Ch)
	}
	require.Equal(t, want, g.Selection)
}

func TestIdempotentReset(t *testing.T) {
	g := newTestGrid(t, 8, 3)
	g.PutChar('x', 2, 1)
	g.Reset()
	first := append([]Cell(nil), g.cells...)
	firstFb := append([]byte(nil), g.fb...)

	g.Reset()

	require.Equal(t, first, g.cells)
	require.Equal(t, firstFb, g.fb)
}

func TestScenarioAPlainText(t *testing.T) {
	g := newTestGrid(t, 80, 24)
	for _, ch := range []byte("Hello") {
		g.PutChar(ch, DefaultFg, DefaultBg)
	}
	g.PutChar('\r', DefaultFg, DefaultBg)
	g.PutChar('\n', DefaultFg, DefaultBg)
	for _, ch := range []byte("World") {
		g.PutChar(ch, DefaultFg, DefaultBg)
	}

	for i, want := range []byte("Hello") {
		require.Equal(t, want, g.CellAt(i, 0).Ch)
	}
	require.Equal(t, 5, g.X)
	require.Equal(t, 1, g.Y)
}

func TestScenarioFInsertDeleteChar(t *testing.T) {
	g := newTestGrid(t, 10, 1)
	for i, ch := range []byte("ABCDE") {
		g.setCell(i, 0, Cell{Ch: ch, Attr: packAttr(DefaultFg, DefaultBg)})
	}
	for i := 5; i < 10; i++ {
		g.setCell(i, 0, Cell{Ch: ' ', Attr: packAttr(DefaultFg, DefaultBg)})
	}
	g.X, g.Y = 1, 0

	g.DeleteChars(2)

	got := make([]byte, g.W)
	for i := 0; i < g.W; i++ {
		got[i] = g.CellAt(i, 0).Ch
	}
	require.Equal(t, []byte("ADE       "), got)
}
