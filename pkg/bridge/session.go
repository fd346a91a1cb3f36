// Package bridge runs the console's event loop: a PTY reader and an RFB
// event pump cooperating over one shared exclusion lock, shut down
// cooperatively when the context is canceled or the PTY closes.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
	"github.com/OpenVZ/prl-vzvncserver/pkg/vt102"
)

// bellCoalesceWindow groups bell requests arriving within this window into
// a single RFB bell, so a flood of BEL bytes (e.g. `yes` piped to a full
// terminal) doesn't spam clients.
const bellCoalesceWindow = 200 * time.Millisecond

// Surface is the subset of console.Surface plus the event-pump hooks a
// Session needs from its RFB adapter. pkg/rfbsurface.Surface satisfies it.
type Surface interface {
	console.Surface
	Serve(ctx context.Context, withLock func(func())) error
	Shutdown() error
}

// Session owns the shared lock guarding the grid, the VT machine, and all
// state they mutate. Exactly one Session exists per process; the console
// has no notion of multiple independent screens.
type Session struct {
	Grid    *console.Grid
	Machine *vt102.Machine
	PTY     io.ReadWriteCloser
	Surface Surface
	Logger  *zap.SugaredLogger

	mu sync.Mutex

	bellMu      sync.Mutex
	bellPending bool
	bellTimer   *time.Timer
}

// New builds a Session and wires the VT machine's bell callback to the
// coalescing bell path.
func New(grid *console.Grid, pty io.ReadWriteCloser, surface Surface, logger *zap.SugaredLogger) *Session {
	m := vt102.New(grid)
	s := &Session{Grid: grid, Machine: m, PTY: pty, Surface: surface, Logger: logger}
	m.BellFunc = s.ringBell
	m.Logf = s.logDebugf
	return s
}

func (s *Session) logDebugf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger.Debugf(format, args...)
	}
}

// ringBell coalesces bell requests into one RFB bell per
// bellCoalesceWindow.
func (s *Session) ringBell() {
	s.bellMu.Lock()
	defer s.bellMu.Unlock()

	if s.bellPending {
		return
	}
	s.bellPending = true
	s.bellTimer = time.AfterFunc(bellCoalesceWindow, func() {
		s.bellMu.Lock()
		s.bellPending = false
		s.bellMu.Unlock()
		s.Surface.Bell()
	})
}

// Run starts the RFB event pump in the background and the PTY reader on
// the calling goroutine, and blocks until the PTY closes, a read fails, or
// ctx is canceled.
func (s *Session) Run(ctx context.Context) error {
	rfbErr := make(chan error, 1)
	go func() {
		rfbErr <- s.Surface.Serve(ctx, s.withLock)
	}()
	// The reader blocks in PTY.Read; closing the PTY is what unblocks it
	// when shutdown arrives via the context rather than via EOF.
	go func() {
		<-ctx.Done()
		s.PTY.Close()
	}()

	readErr := s.readLoop(ctx)

	if shutdownErr := s.Surface.Shutdown(); shutdownErr != nil && s.Logger != nil {
		s.Logger.Warnf("bridge: surface shutdown: %v", shutdownErr)
	}

	if readErr != nil {
		return readErr
	}
	select {
	case err := <-rfbErr:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return nil
	}
}

// withLock runs fn under the session's single exclusion lock; every grid
// mutation, from either loop, goes through here.
func (s *Session) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// WithLock exposes the session's exclusion lock to callers outside this
// package that need to mutate the grid out-of-band — e.g. repainting the
// startup banner on a config hot-reload — without racing the PTY reader or
// the event pump.
func (s *Session) WithLock(fn func()) {
	s.withLock(fn)
}

// readLoop blocks on the PTY and feeds the VT machine under the lock. The
// machine consumes one byte at a time; reading into a buffer and feeding
// from it is observably identical to byte-sized reads (Feed sees the same
// ordered stream under the same lock) and avoids one syscall per
// character. A read failure tears the session down.
func (s *Session) readLoop(ctx context.Context) error {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := s.PTY.Read(buf)
		if n > 0 {
			s.withLock(func() {
				for i := 0; i < n; i++ {
					s.Machine.Feed(buf[i])
				}
			})
		}
		if err != nil {
			if err == io.EOF || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("bridge: pty read: %w", err)
		}
	}
}
