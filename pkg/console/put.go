package console

// PutChar writes ch at the cursor with the given attribute, or interprets
// it as a control character.
func (g *Grid) PutChar(ch byte, fg, bg byte) {
	if ch < 32 {
		switch ch {
		case 0x0D: // CR
			g.HideCursor()
			g.X = 0
			g.DrawCursor()
		case 0x0A: // LF
			g.HideCursor()
			g.X = 0
			g.Y++
			g.normalizeCursor()
			g.DrawCursor()
		case 0x09: // HT
			for {
				g.putGlyph(' ', fg, bg)
				if g.X%8 == 0 {
					break
				}
			}
		case 0x08: // BS — cursor motion is the VT layer's job, not the raster path's.
		default:
			g.putGlyph(' ', fg, bg)
		}
		return
	}
	g.putGlyph(ch, fg, bg)
}

// putGlyph is the non-control-character path of PutChar: hide cursor,
// normalize position, store the cell, paint pixels, advance x.
func (g *Grid) putGlyph(ch byte, fg, bg byte) {
	g.HideCursor()
	g.normalizeCursor()

	g.setCell(g.X, g.Y, Cell{Ch: ch, Attr: packAttr(fg, bg)})
	g.paintCell(g.X, g.Y, ch, fg, bg)
	g.X++
	g.DrawCursor()
}

// normalizeCursor wraps x into the next row, then keeps y within the
// scroll region by wrapping to the top or scrolling the region up.
func (g *Grid) normalizeCursor() {
	if g.X >= g.W {
		g.X = 0
		g.Y++
	}
	if g.Y >= g.Bottom {
		if g.WrapBottomToTop {
			g.Y = 0
		} else {
			// The cursor sits below the region until the scroll settles;
			// keep it suppressed so the block moves inside Scroll don't
			// paint the bar at that transient position. The caller redraws
			// once y is final.
			wasSuppressed := g.cursorSuppressed
			g.cursorSuppressed = true
			g.Scroll(g.Y + 1 - g.Bottom)
			g.cursorSuppressed = wasSuppressed
			g.Y = g.Bottom - 1
		}
	}
}

// paintCell fills the cell's background then stamps the glyph mask in fg,
// and marks the cell rectangle dirty.
func (g *Grid) paintCell(x, y int, ch, fg, bg byte) {
	x0, y0 := x*g.CW, y*g.CH
	wpix := g.Wpix()

	for row := 0; row < g.CH; row++ {
		rowStart := (y0+row)*wpix + x0
		for col := 0; col < g.CW; col++ {
			px := bg
			if g.Font.Set(ch, col, row) {
				px = fg
			}
			g.fb[rowStart+col] = px
		}
	}
	g.Surface.DirtyRect(x0, y0, x0+g.CW, y0+g.CH)
}
