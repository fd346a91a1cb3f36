package console

// MoveCursor moves the cursor by (dy,dx), clamped to the grid horizontally
// and to the scroll region vertically.
func (g *Grid) MoveCursor(dy, dx int) {
	g.HideCursor()
	g.Y += dy
	g.X += dx

	if g.X < 0 {
		g.X = 0
	}
	if g.X >= g.W {
		g.X = g.W - 1
	}
	if g.Y < g.Top {
		g.Y = g.Top
	}
	if g.Y >= g.Bottom {
		g.Y = g.Bottom - 1
	}
	g.DrawCursor()
}

// SetCursorPos places the cursor from 1-based (row, col) coordinates,
// clamped to the grid.
func (g *Grid) SetCursorPos(row, col int) {
	g.HideCursor()
	y, x := row-1, col-1
	if y < 0 {
		y = 0
	}
	if y >= g.H {
		y = g.H - 1
	}
	if x < 0 {
		x = 0
	}
	if x >= g.W {
		x = g.W - 1
	}
	g.Y, g.X = y, x
	g.DrawCursor()
}

// SetScrollRegion sets the scroll region to [top-1, bottom) from 1-based
// arguments, defaulting to the full grid and rejecting an inverted range.
// The cursor is left where it is.
func (g *Grid) SetScrollRegion(top, bottom int) {
	t, b := top-1, bottom
	if t < 0 {
		t = 0
	}
	if b <= 0 || b > g.H {
		b = g.H
	}
	if t >= b {
		t, b = 0, g.H
	}
	g.Top, g.Bottom = t, b
}
