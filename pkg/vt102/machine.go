// Package vt102 implements a VT102/ANSI escape-sequence state machine: a
// byte-at-a-time automaton that accumulates numeric parameters and
// dispatches edits to a console.Grid.
package vt102

import "github.com/OpenVZ/prl-vzvncserver/pkg/console"

const escparmsSize = 16

type state int

const (
	stateNormal state = iota
	stateEsc
	stateCSI
	stateCSIQuestion
	stateCharsetG0
	stateCharsetG1
	stateHash
	stateDCS
)

// Machine is the VT102 engine. One Machine drives one console.Grid; both
// are owned by the session that also holds the shared exclusion lock, so
// Machine itself is not safe for concurrent use.
type Machine struct {
	Grid *console.Grid

	escState state
	escparms [escparmsSize]int
	ptr      int

	fg, bg byte

	// BellFunc, if non-nil, is invoked on BEL (0x07). It is a callback
	// rather than a direct Surface reference so the machine only ever
	// knows about the grid.
	BellFunc func()

	// Logf, if non-nil, receives a debug line for an unknown or ignored
	// escape sequence.
	Logf func(format string, args ...any)
}

// New creates a Machine bound to grid in its initial state: normal mode,
// fg=7 (white), bg=0 (black).
func New(grid *console.Grid) *Machine {
	return &Machine{
		Grid: grid,
		fg:   console.DefaultFg,
		bg:   console.DefaultBg,
	}
}

func (m *Machine) logf(format string, args ...any) {
	if m.Logf != nil {
		m.Logf(format, args...)
	}
}

func (m *Machine) bell() {
	if m.BellFunc != nil {
		m.BellFunc()
	}
}

// Feed advances the state machine by one byte. A control byte is
// dispatched first regardless of state; if it wasn't consumed there, the
// byte is routed to the current escape state's handler.
func (m *Machine) Feed(b byte) {
	switch b {
	case 0x00:
		return // dropped
	case 0x07: // BEL
		m.bell()
		return
	case 0x08: // BS
		m.Grid.HideCursor()
		if m.Grid.X > 0 {
			m.Grid.X--
		}
		m.Grid.DrawCursor()
		return
	case 0x09, 0x0A, 0x0D: // HT, LF, CR
		m.Grid.PutChar(b, m.fg, m.bg)
		return
	case 0x0B, 0x0C:
		m.logf("vt102: ignored control byte 0x%02x", b)
		return
	case 0x0E, 0x0F: // charset switch — ignored
		return
	case 0x18, 0x1A: // cancel
		m.resetEscape()
		return
	case 0x1B: // ESC
		m.escState = stateEsc
		return
	}

	switch m.escState {
	case stateNormal:
		m.Grid.PutChar(b, m.fg, m.bg)
	case stateEsc:
		m.state1(b)
	case stateCSI:
		m.state2(b)
	case stateCSIQuestion:
		m.state3(b)
	case stateCharsetG0, stateCharsetG1:
		m.escState = stateNormal
	case stateHash:
		m.state6(b)
	case stateDCS:
		m.escState = stateNormal
	}
}

// resetEscape returns the machine to the normal state and clears the
// accumulated parameters. Errors never propagate out of the machine; every
// unknown terminator lands here.
func (m *Machine) resetEscape() {
	m.escState = stateNormal
	m.ptr = 0
	for i := range m.escparms {
		m.escparms[i] = 0
	}
}

// param returns escparms[i], defaulting to def when the parameter was
// omitted or zero (the VT102 "omitted parameter means 1" convention).
func (m *Machine) param(i, def int) int {
	if i > m.ptr || m.escparms[i] == 0 {
		return def
	}
	return m.escparms[i]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
