package vt102

import "github.com/OpenVZ/prl-vzvncserver/pkg/console"

// state1 handles the byte following ESC.
func (m *Machine) state1(b byte) {
	switch b {
	case '[':
		m.escState = stateCSI
		return
	case '(':
		m.escState = stateCharsetG0
		return
	case ')':
		m.escState = stateCharsetG1
		return
	case '#':
		m.escState = stateHash
		return
	case 'P':
		m.escState = stateDCS
		return
	case 'E': // next line: CR + LF
		m.Grid.PutChar('\r', m.fg, m.bg)
		m.Grid.PutChar('\n', m.fg, m.bg)
	case 'c': // full reset
		m.Grid.Reset()
		m.fg, m.bg = console.DefaultFg, console.DefaultBg
	case 'D', 'M', '7', '8', '=', '>', 'Z':
		// index/reverse-index/save-restore cursor/keypad mode/terminal-type
		// queries: acknowledged, no grid effect.
	default:
		m.logf("vt102: unhandled ESC %q", b)
	}
	m.resetEscape()
}

// state2 handles CSI parameter accumulation and terminators.
func (m *Machine) state2(b byte) {
	switch {
	case b >= '0' && b <= '9':
		m.escparms[m.ptr] = m.escparms[m.ptr]*10 + int(b-'0')
		return
	case b == ';':
		if m.ptr < escparmsSize-1 {
			m.ptr++
		}
		return
	case b == '?' && m.escparms[0] == 0 && m.ptr == 0:
		m.escState = stateCSIQuestion
		return
	}

	m.dispatchCSI(b)
	m.resetEscape()
}

func (m *Machine) dispatchCSI(b byte) {
	g := m.Grid
	switch b {
	case 'A':
		g.MoveCursor(-maxInt(m.param(0, 1), 1), 0)
	case 'B':
		g.MoveCursor(maxInt(m.param(0, 1), 1), 0)
	case 'C':
		g.MoveCursor(0, maxInt(m.param(0, 1), 1))
	case 'D':
		g.MoveCursor(0, -maxInt(m.param(0, 1), 1))
	case 'H', 'f':
		g.SetCursorPos(m.param(0, 1), m.param(1, 1))
	case 'J':
		g.EraseDisplay(m.param(0, 0))
	case 'K':
		g.EraseLine(m.param(0, 0))
	case 'L':
		g.InsertLines(g.Y, maxInt(m.param(0, 1), 1))
	case 'M':
		g.DeleteLines(g.Y, maxInt(m.param(0, 1), 1))
	case '@':
		g.InsertChars(maxInt(m.param(0, 1), 1))
	case 'P':
		g.DeleteChars(maxInt(m.param(0, 1), 1))
	case 'r':
		top := m.param(0, 1)
		bottom := m.param(1, g.H)
		g.SetScrollRegion(top, bottom)
	case 'h', 'l':
		// ANSI mode set/reset (insert mode 4, newline mode 20): recognized,
		// logged only.
		m.logf("vt102: ANSI mode %c%d", b, m.param(0, 0))
	case 'm':
		m.sgr()
	case 's', 'u', 'n', 'c', 'x', 'g', 'i', 'y', 'X':
		// acknowledged, ignored
	default:
		m.logf("vt102: unknown CSI terminator %q", b)
	}
}

// sgr applies every accumulated SGR parameter in order.
func (m *Machine) sgr() {
	last := m.ptr
	for i := 0; i <= last; i++ {
		p := m.escparms[i]
		switch {
		case p == 0:
			m.fg, m.bg = console.DefaultFg, console.DefaultBg
		case p == 1, p == 4, p == 5, p == 7:
			// bold/underline/blink/reverse: this rasterizer has no separate
			// attribute bits beyond fg/bg, so these are acknowledged only.
		case p == 22, p == 24, p == 25, p == 27:
		case p >= 30 && p <= 37:
			m.fg = byte(p - 30)
		case p >= 40 && p <= 47:
			m.bg = byte(p - 40)
		case p == 39:
			m.fg = console.DefaultFg
		case p == 49:
			m.bg = console.DefaultBg
		}
	}
}

// state3 handles CSI ? private-mode sequences.
func (m *Machine) state3(b byte) {
	switch {
	case b >= '0' && b <= '9':
		m.escparms[m.ptr] = m.escparms[m.ptr]*10 + int(b-'0')
		return
	case b == ';':
		if m.ptr < escparmsSize-1 {
			m.ptr++
		}
		return
	case b == 'h' || b == 'l':
		on := b == 'h'
		last := m.ptr
		for i := 0; i <= last; i++ {
			switch m.escparms[i] {
			case 5:
				if on {
					m.bell()
				}
			case 7:
				// autowrap: ignored
			case 25:
				m.Grid.SetSuppressed(!on)
				if on {
					m.Grid.DrawCursor()
				} else {
					m.Grid.HideCursor()
				}
			}
		}
	default:
		m.logf("vt102: unknown CSI? terminator %q", b)
	}
	m.resetEscape()
}

// state6 consumes the single byte following ESC # (screen alignment and
// line size commands): acknowledged and ignored.
func (m *Machine) state6(b byte) {
	m.resetEscape()
}
