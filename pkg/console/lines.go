package console

// fillPixelRect paints palette index idx into the pixel rectangle
// [x0,y0)-(x1,y1) and marks it dirty.
func (g *Grid) fillPixelRect(x0, y0, x1, y1 int, idx byte) {
	wpix := g.Wpix()
	for y := y0; y < y1; y++ {
		row := y * wpix
		for x := x0; x < x1; x++ {
			g.fb[row+x] = idx
		}
	}
	g.Surface.DirtyRect(x0, y0, x1, y1)
}

// copyPixelRows moves the pixel rows [y0,y1) down by dy rows (dy may be
// negative) and emits a copy-rect notification instead of repainting.
func (g *Grid) copyPixelRows(y0, y1, dy int) {
	wpix := g.Wpix()
	srcStart := y0 * wpix
	srcEnd := y1 * wpix
	dstStart := srcStart + dy*wpix
	copy(g.fb[dstStart:dstStart+(srcEnd-srcStart)], g.fb[srcStart:srcEnd])
	g.Surface.CopyRect(0, y0, wpix, y1, 0, dy)
}

// fillCellRows fills grid rows [from,from+n) with spaces and the default
// attribute.
func (g *Grid) fillCellRows(from, n int) {
	blank := Cell{Ch: ' ', Attr: packAttr(DefaultFg, DefaultBg)}
	for y := from; y < from+n; y++ {
		row := y * g.W
		for x := 0; x < g.W; x++ {
			g.cells[row+x] = blank
		}
	}
}

// Scroll shifts the scroll region's text: n>0 scrolls up (discarding the
// top n lines of the region), n<0 scrolls down. When the magnitude of n
// covers the whole region there is nothing to move, so the region is just
// blanked to spaces with the default attribute.
func (g *Grid) Scroll(n int) {
	if n == 0 {
		return
	}
	regionHeight := g.Bottom - g.Top
	if n >= regionHeight || -n >= regionHeight {
		g.HideCursor()
		g.fillCellRows(g.Top, regionHeight)
		g.fillPixelRect(0, g.Top*g.CH, g.Wpix(), g.Bottom*g.CH, DefaultBg)
		g.DrawCursor()
		return
	}
	if n > 0 {
		g.DeleteLines(g.Top, n)
	} else {
		g.InsertLines(g.Top, -n)
	}
}

// InsertLines moves rows [from, bottom-k) down by k, then blanks the newly
// opened rows [from, from+k). k is clamped to the scroll region.
func (g *Grid) InsertLines(from, k int) {
	if k > g.Bottom-from {
		k = g.Bottom - from
	}
	if k <= 0 {
		return
	}
	g.HideCursor()
	moved := g.Bottom - from - k
	if moved > 0 {
		copy(g.cells[(from+k)*g.W:(from+k+moved)*g.W], g.cells[from*g.W:(from+moved)*g.W])
		g.copyPixelRows(from*g.CH, (from+moved)*g.CH, k*g.CH)
	}
	g.fillCellRows(from, k)
	g.fillPixelRect(0, from*g.CH, g.Wpix(), (from+k)*g.CH, DefaultBg)
	g.DrawCursor()
}

// DeleteLines moves rows [from+k, bottom) up by k, then blanks the
// trailing k rows of the region. k is clamped to the scroll region.
func (g *Grid) DeleteLines(from, k int) {
	if k > g.Bottom-from {
		k = g.Bottom - from
	}
	if k <= 0 {
		return
	}
	g.HideCursor()
	moved := g.Bottom - from - k
	if moved > 0 {
		copy(g.cells[from*g.W:(from+moved)*g.W], g.cells[(from+k)*g.W:(from+k+moved)*g.W])
		g.copyPixelRows((from+k)*g.CH, g.Bottom*g.CH, -k*g.CH)
	}
	g.fillCellRows(from+moved, k)
	g.fillPixelRect(0, (from+moved)*g.CH, g.Wpix(), g.Bottom*g.CH, DefaultBg)
	g.DrawCursor()
}

// InsertChars shifts the current line's cells right from the cursor
// column by k, blanking the opened gap. k is clamped to the line width.
func (g *Grid) InsertChars(k int) {
	if k > g.W-g.X {
		k = g.W - g.X
	}
	if k <= 0 {
		return
	}
	g.HideCursor()
	row := g.Y * g.W
	g.moveCellsRight(row, g.X, k)

	blank := Cell{Ch: ' ', Attr: packAttr(DefaultFg, DefaultBg)}
	for x := g.X; x < g.X+k; x++ {
		g.cells[row+x] = blank
	}

	y0, y1 := g.Y*g.CH, (g.Y+1)*g.CH
	x0 := g.X * g.CW
	moved := g.W - g.X - k
	if moved > 0 {
		g.copyPixelRowSpan(y0, y1, x0, x0+moved*g.CW, k*g.CW)
	}
	g.fillPixelRect(x0, y0, x0+k*g.CW, y1, DefaultBg)
	g.DrawCursor()
}

// DeleteChars shifts the current line's cells left by k from the cursor
// column, blanking the trailing k cells of the line. k is clamped to the
// line width.
func (g *Grid) DeleteChars(k int) {
	if k > g.W-g.X {
		k = g.W - g.X
	}
	if k <= 0 {
		return
	}
	g.HideCursor()
	row := g.Y * g.W
	moved := g.W - g.X - k
	if moved > 0 {
		copy(g.cells[row+g.X:row+g.X+moved], g.cells[row+g.X+k:row+g.X+k+moved])
	}
	blank := Cell{Ch: ' ', Attr: packAttr(DefaultFg, DefaultBg)}
	for x := g.W - k; x < g.W; x++ {
		g.cells[row+x] = blank
	}

	y0, y1 := g.Y*g.CH, (g.Y+1)*g.CH
	x0 := g.X * g.CW
	if moved > 0 {
		g.copyPixelRowSpan(y0, y1, x0+k*g.CW, x0+k*g.CW+moved*g.CW, -k*g.CW)
	}
	g.fillPixelRect((g.W-k)*g.CW, y0, g.Wpix(), y1, DefaultBg)
	g.DrawCursor()
}

// moveCellsRight shifts cells [from, W-k) on the given row start to
// [from+k, W), used by InsertChars.
func (g *Grid) moveCellsRight(rowStart, from, k int) {
	moved := g.W - from - k
	if moved <= 0 {
		return
	}
	copy(g.cells[rowStart+from+k:rowStart+from+k+moved], g.cells[rowStart+from:rowStart+from+moved])
}

// copyPixelRowSpan copies the pixel span [x0,x1) within rows [y0,y1) to an
// offset of dx columns, emitting a copy-rect notification.
func (g *Grid) copyPixelRowSpan(y0, y1, x0, x1, dx int) {
	wpix := g.Wpix()
	for y := y0; y < y1; y++ {
		row := y * wpix
		copy(g.fb[row+x0+dx:row+x1+dx], g.fb[row+x0:row+x1])
	}
	g.Surface.CopyRect(x0, y0, x1, y1, dx, 0)
}
