package console

// toggleMarkCell XORs the full cell rectangle at linear position pos with
// 0x0f on every pixel, inverting palette intensity — the highlight effect
// for a cell under the selection.
func (g *Grid) toggleMarkCell(pos int) {
	x := (pos % g.W) * g.CW
	y := (pos / g.W) * g.CH
	wpix := g.Wpix()
	for row := 0; row < g.CH; row++ {
		base := (y+row)*wpix + x
		for col := 0; col < g.CW; col++ {
			g.fb[base+col] ^= 0x0f
		}
	}
	g.Surface.DirtyRect(x, y, x+g.CW, y+g.CH)
}

// BeginMark starts a selection drag at linear cell position pos.
func (g *Grid) BeginMark(pos int) {
	g.Active = true
	g.MarkStart = pos
	g.MarkEnd = pos
	g.toggleMarkCell(pos)
}

// ExtendMark moves the drag's live end to pos, toggling exactly the cells
// whose highlight state changed.
//
// Convention: the highlighted range is [min(MarkStart,MarkEnd),
// max(MarkStart,MarkEnd)] and its live edge is MarkEnd. Moving that edge
// from E to a new position N can only change the membership of cells
// between E and N inclusive, so each of those is toggled when it lies in
// exactly one of the old and new ranges — growing the drag turns cells on,
// shrinking it turns them back off, since XOR is its own inverse. While
// the drag stays at or after MarkStart this is (min(E,N), max(E,N)];
// before MarkStart it is [min(E,N), max(E,N)).
func (g *Grid) ExtendMark(pos int) {
	if !g.Active || pos == g.MarkEnd {
		return
	}
	s, e := g.MarkStart, g.MarkEnd
	for p := min(e, pos); p <= max(e, pos); p++ {
		wasOn := p >= min(s, e) && p <= max(s, e)
		isOn := p >= min(s, pos) && p <= max(s, pos)
		if wasOn != isOn {
			g.toggleMarkCell(p)
		}
	}
	g.MarkEnd = pos
}

// EndMark extracts the grid text between MarkStart and MarkEnd in
// row-major order, stores it as the session selection, clears the drag
// highlight, and publishes it as cut text. A malformed range is dropped
// silently: the highlight is cleared and the previous selection is kept.
func (g *Grid) EndMark() {
	if !g.Active {
		return
	}
	i, j := g.MarkStart, g.MarkEnd
	if i > j {
		i, j = j, i
	}
	j++
	if j-i <= 0 || j-i > g.W*g.H {
		g.Unmark()
		return
	}

	text := make([]byte, j-i)
	for k := i; k < j; k++ {
		text[k-i] = g.cells[k].Ch
	}

	g.Unmark()
	g.Selection = text
	g.Surface.SetCutText(string(text))
}

// Unmark deactivates the selection, toggling every cell in the previously
// active range back to its un-highlighted state.
func (g *Grid) Unmark() {
	g.unmarkSilently()
}

func (g *Grid) unmarkSilently() {
	if !g.Active {
		return
	}
	g.Active = false
	i, j := g.MarkStart, g.MarkEnd
	if i > j {
		i, j = j, i
	}
	for p := i; p <= j; p++ {
		g.toggleMarkCell(p)
	}
}

// SetCutText replaces the session selection with text received from a
// client, bounded at 65535 bytes.
func (g *Grid) SetCutText(text []byte) error {
	const maxCutText = 65535
	if len(text) > maxCutText {
		return errOversizedPaste
	}
	g.Selection = append([]byte(nil), text...)
	return nil
}
