package console

// drawOrHideCursor XORs the cursor bar into the framebuffer at the
// current position and toggles cursorDrawn. XOR makes draw and hide the
// same operation; the flag records which one this is.
func (g *Grid) drawOrHideCursor() {
	wpix := g.Wpix()
	x0 := g.X * g.CW
	y0 := g.Y * g.CH
	for y := g.cy1; y < g.cy2; y++ {
		row := (y0+y)*wpix + x0
		for x := g.cx1; x < g.cx2; x++ {
			g.fb[row+x] ^= 0x0f
		}
	}
	g.Surface.DirtyRect(x0+g.cx1, y0+g.cy1, x0+g.cx2, y0+g.cy2)
	g.cursorDrawn = !g.cursorDrawn
}

// DrawCursor is idempotent: a no-op if already drawn, suppressed, or the
// cursor sits in the pending-wrap column.
func (g *Grid) DrawCursor() {
	if g.cursorSuppressed || g.cursorDrawn {
		return
	}
	if g.Y >= g.H || g.X >= g.W {
		return
	}
	g.drawOrHideCursor()
}

// HideCursor is idempotent: a no-op if not currently drawn. An in-progress
// selection drag is retired first, since the edit that follows would paint
// over its highlight.
func (g *Grid) HideCursor() {
	if g.Active {
		g.Unmark()
	}
	if g.cursorDrawn {
		g.drawOrHideCursor()
	}
}

// SetSuppressed toggles the flag that keeps DrawCursor from repainting,
// letting a caller batch several edits under one hide/draw pair.
func (g *Grid) SetSuppressed(suppressed bool) {
	g.cursorSuppressed = suppressed
}

// CursorDrawn reports whether the cursor XOR bar is currently painted.
func (g *Grid) CursorDrawn() bool { return g.cursorDrawn }
