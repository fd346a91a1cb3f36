package inputbridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
)

func newTestBridge(t *testing.T) (*Bridge, *bytes.Buffer, *console.Grid) {
	t.Helper()
	g, err := console.New(10, 5, palette.DefaultFont)
	require.NoError(t, err)
	var buf bytes.Buffer
	return New(&buf, g), &buf, g
}

func TestKeyEventPlainCharacter(t *testing.T) {
	b, buf, _ := newTestBridge(t)
	b.KeyEvent(true, 'q')
	require.Equal(t, []byte("q"), buf.Bytes())
}

func TestKeyEventTableEntry(t *testing.T) {
	b, buf, _ := newTestBridge(t)
	b.KeyEvent(true, KeyReturn)
	require.Equal(t, []byte("\r"), buf.Bytes())

	buf.Reset()
	b.KeyEvent(true, KeyUp)
	require.Equal(t, []byte("\x1b[A"), buf.Bytes())
}

func TestKeyEventControlLetter(t *testing.T) {
	b, buf, _ := newTestBridge(t)
	b.KeyEvent(true, KeyControlL)
	b.KeyEvent(true, 'c')
	b.KeyEvent(false, KeyControlL)
	require.Equal(t, []byte{3}, buf.Bytes())
}

func TestKeyEventKeyUpProducesNoOutput(t *testing.T) {
	b, buf, _ := newTestBridge(t)
	b.KeyEvent(false, 'q')
	require.Empty(t, buf.Bytes())
}

func TestPointerSelectionDragAndRelease(t *testing.T) {
	b, _, g := newTestBridge(t)
	for _, ch := range []byte("abcdefghij") {
		g.PutChar(ch, console.DefaultFg, console.DefaultBg)
	}

	cw := g.CW
	b.PointerEvent(1, 2*cw, 0) // press at cell (2,0)
	require.True(t, g.Active)
	b.PointerEvent(1, 6*cw, 0) // drag to cell (6,0)
	b.PointerEvent(0, 6*cw, 0) // release

	require.False(t, g.Active)
	require.Equal(t, []byte("cdefg"), g.Selection)
}

func TestPointerRightClickPaste(t *testing.T) {
	b, buf, g := newTestBridge(t)
	g.Selection = []byte("hi")

	b.PointerEvent(4, 0, 0) // right button down
	require.Empty(t, buf.Bytes())
	b.PointerEvent(0, 0, 0) // right button up: paste

	require.Equal(t, []byte("hi"), buf.Bytes())
}

func TestSetCutTextRejectsOversize(t *testing.T) {
	b, _, _ := newTestBridge(t)
	big := make([]byte, 70000)
	err := b.SetCutText(string(big))
	require.Error(t, err)
}
