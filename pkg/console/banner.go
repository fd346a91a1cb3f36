package console

// WriteBanner paints text into row 0 through the same cell/pixel path
// PutChar uses, padding the rest of the row with spaces, then restores the
// cursor. Text longer than the grid width is truncated. Used for an
// optional startup message painted before the PTY program's own output
// arrives.
func (g *Grid) WriteBanner(text string) {
	g.HideCursor()
	savedX, savedY := g.X, g.Y
	g.X, g.Y = 0, 0
	for i := 0; i < g.W; i++ {
		ch := byte(' ')
		if i < len(text) {
			ch = text[i]
		}
		g.putGlyph(ch, DefaultFg, DefaultBg)
	}
	g.X, g.Y = savedX, savedY
	g.DrawCursor()
}
