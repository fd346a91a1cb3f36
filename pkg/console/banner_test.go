package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteBannerPaintsRowZeroAndRestoresCursor(t *testing.T) {
	g := newTestGrid(t, 10, 4)
	g.X, g.Y = 3, 2

	g.WriteBanner("hi")

	require.Equal(t, byte('h'), g.CellAt(0, 0).Ch)
	require.Equal(t, byte('i'), g.CellAt(1, 0).Ch)
	require.Equal(t, byte(' '), g.CellAt(2, 0).Ch)
	require.Equal(t, 3, g.X)
	require.Equal(t, 2, g.Y)
}

func TestWriteBannerTruncatesToWidth(t *testing.T) {
	g := newTestGrid(t, 4, 2)
	g.WriteBanner("way too long")
	require.Equal(t, byte('w'), g.CellAt(0, 0).Ch)
	require.Equal(t, byte('y'), g.CellAt(2, 0).Ch)
	require.Equal(t, byte(' '), g.CellAt(3, 0).Ch)
}
