package bridge

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
)

type fakeSurface struct {
	bells atomic.Int32
}

func (f *fakeSurface) DirtyRect(x0, y0, x1, y1 int)        {}
func (f *fakeSurface) CopyRect(x0, y0, x1, y1, dx, dy int) {}
func (f *fakeSurface) Bell()                               { f.bells.Add(1) }
func (f *fakeSurface) SetCutText(text string)              {}
func (f *fakeSurface) Shutdown() error                     { return nil }

func (f *fakeSurface) Serve(ctx context.Context, withLock func(func())) error {
	<-ctx.Done()
	return ctx.Err()
}

func newTestSession(t *testing.T) (*Session, net.Conn, *fakeSurface) {
	t.Helper()
	g, err := console.New(20, 5, palette.DefaultFont)
	require.NoError(t, err)
	server, client := net.Pipe()
	surface := &fakeSurface{}
	return New(g, server, surface, zap.NewNop().Sugar()), client, surface
}

func TestRunFeedsPTYBytesThroughMachine(t *testing.T) {
	sess, client, _ := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	_, err := client.Write([]byte("Hi\x1b[31m!"))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after pty close")
	}

	require.Equal(t, byte('H'), sess.Grid.CellAt(0, 0).Ch)
	require.Equal(t, byte('i'), sess.Grid.CellAt(1, 0).Ch)
	exclam := sess.Grid.CellAt(2, 0)
	require.Equal(t, byte('!'), exclam.Ch)
	require.Equal(t, byte(1), exclam.Fg())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	sess, client, _ := newTestSession(t)
	defer client.Close()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}

func TestRingBellCoalesces(t *testing.T) {
	sess, client, surface := newTestSession(t)
	defer client.Close()

	for i := 0; i < 10; i++ {
		sess.ringBell()
	}
	require.Eventually(t, func() bool {
		return surface.bells.Load() == 1
	}, time.Second, 10*time.Millisecond)

	// The window has elapsed; the next burst produces exactly one more.
	for i := 0; i < 10; i++ {
		sess.ringBell()
	}
	require.Eventually(t, func() bool {
		return surface.bells.Load() == 2
	}, time.Second, 10*time.Millisecond)
}
