package inputbridge

import (
	"io"

	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
)

// Bridge owns the keyboard control-key depth counter and the right-button
// paste latch. One Bridge serves one session's PTY and grid; like
// console.Grid, it assumes the caller already holds the session lock —
// every call here runs inside the RFB event pump's critical section.
type Bridge struct {
	PTY  io.Writer
	Grid *console.Grid

	// Logf receives a line when a PTY write fails (keystrokes may be
	// lost, never fatal) or an oversized paste is rejected.
	Logf func(format string, args ...any)

	ctrlDepth       int
	rightButtonDown bool
}

// New creates a Bridge writing to pty and driving grid's selection state.
func New(pty io.Writer, grid *console.Grid) *Bridge {
	return &Bridge{PTY: pty, Grid: grid}
}

func (b *Bridge) logf(format string, args ...any) {
	if b.Logf != nil {
		b.Logf(format, args...)
	}
}

// writeBytes is the single PTY write path: best effort, logged on failure.
func (b *Bridge) writeBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	if _, err := b.PTY.Write(p); err != nil {
		b.logf("inputbridge: pty write failed: %v", err)
	}
}

// KeyEvent handles one RFB keyboard event. Only key-down events produce
// PTY output; key-up only affects the control-key depth counter.
func (b *Bridge) KeyEvent(down bool, key Keysym) {
	if key == KeyControlL || key == KeyControlR {
		if down {
			b.ctrlDepth++
		} else if b.ctrlDepth > 0 {
			b.ctrlDepth--
		}
		return
	}
	if !down {
		return
	}

	if b.ctrlDepth > 0 {
		switch {
		case key >= 'a' && key <= 'z':
			b.writeBytes([]byte{byte(key - 'a' + 1)})
			return
		case key >= 'A' && key <= 'Z':
			b.writeBytes([]byte{byte(key - 'A' + 1)})
			return
		}
	}

	if seq, ok := linuxConsoleSequences[key]; ok {
		b.writeBytes([]byte(seq))
		return
	}
	if key < 0x100 {
		b.writeBytes([]byte{byte(key)})
	}
}

// PointerEvent handles one RFB pointer event. x,y are pixel coordinates;
// buttonMask bit 0 is the left button (selection drag), bit 2 is the right
// button (paste on release).
func (b *Bridge) PointerEvent(buttonMask uint8, x, y int) {
	const leftMask = 1
	const rightMask = 4

	if b.rightButtonDown {
		if buttonMask&rightMask == 0 {
			b.pasteSelection()
			b.rightButtonDown = false
		}
	} else if buttonMask&rightMask != 0 {
		b.rightButtonDown = true
	}

	cx := x / b.Grid.CW
	cy := y / b.Grid.CH
	if cx < 0 {
		cx = 0
	} else if cx >= b.Grid.W {
		cx = b.Grid.W - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= b.Grid.H {
		cy = b.Grid.H - 1
	}
	pos := cy*b.Grid.W + cx

	if buttonMask&leftMask != 0 {
		if !b.Grid.Active {
			b.Grid.BeginMark(pos)
		} else {
			b.Grid.ExtendMark(pos)
		}
	} else if b.Grid.Active {
		b.Grid.EndMark()
	}
}

// pasteSelection injects the current selection's bytes as synthetic
// key-down/key-up pairs through the keyboard path. It must not touch the
// grid directly — local echo happens only when the PTY reflects the byte
// back.
func (b *Bridge) pasteSelection() {
	for _, ch := range b.Grid.Selection {
		k := Keysym(ch)
		b.KeyEvent(true, k)
		b.KeyEvent(false, k)
	}
}

// SetCutText handles a client-originated clipboard update, replacing the
// session selection.
func (b *Bridge) SetCutText(text string) error {
	if err := b.Grid.SetCutText([]byte(text)); err != nil {
		b.logf("inputbridge: %v", err)
		return err
	}
	return nil
}
