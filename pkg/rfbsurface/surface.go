// Package rfbsurface adapts github.com/amitbet/vncproxy's embeddable RFB
// server to the console.Surface interface: an 8-bit indexed pixel
// framebuffer, dirty/copy-rectangle notification, bell, cut-text
// publication, and client connect/disconnect/keyboard/pointer/cuttext
// ingress callbacks serviced from a single bounded-timeout event pump.
package rfbsurface

import (
	"context"
	"fmt"
	"sync"
	"time"

	vncserver "github.com/amitbet/vncproxy/server"

	"github.com/OpenVZ/prl-vzvncserver/pkg/console"
	"github.com/OpenVZ/prl-vzvncserver/pkg/inputbridge"
	"github.com/OpenVZ/prl-vzvncserver/pkg/palette"
)

// Config describes how to stand up the RFB listener.
type Config struct {
	BindAddr    string
	Title       string
	PollTimeout time.Duration // event pump poll bound, default 100ms
	Password    string        // empty disables auth
}

func (c Config) pollTimeout() time.Duration {
	if c.PollTimeout <= 0 {
		return 100 * time.Millisecond
	}
	return c.PollTimeout
}

// Surface implements console.Surface on top of a vncproxy server instance.
// One Surface serves one grid; the session lock (owned by pkg/bridge) must
// be held for every method call, matching console.Grid's own contract.
type Surface struct {
	cfg    Config
	grid   *console.Grid
	input  *inputbridge.Bridge
	logf   func(format string, args ...any)
	server *vncserver.Server

	mu      sync.Mutex
	clients int
	cutText string
}

// New wires a vncproxy server against grid's framebuffer, dimensions, and
// the 16-color palette, and attaches input handling against bridge. It
// does not start listening; call Serve to run the event pump.
func New(cfg Config, grid *console.Grid, input *inputbridge.Bridge, logf func(string, ...any)) (*Surface, error) {
	if grid == nil {
		return nil, fmt.Errorf("rfbsurface: nil grid")
	}
	s := &Surface{cfg: cfg, grid: grid, input: input, logf: logf}

	srvCfg := &vncserver.ServerConfig{
		Width:        uint16(grid.Wpix()),
		Height:       uint16(grid.Hpix()),
		Name:         cfg.Title,
		ColorMap:     palette.RGBBytes(),
		FrameBuffer:  grid.Framebuffer(),
		BitsPerPixel: 8,

		OnClientConnect:    s.onConnect,
		OnClientDisconnect: s.onDisconnect,
		OnKeyEvent:         s.onKey,
		OnPointerEvent:     s.onPointer,
		OnCutText:          s.onCutText,
	}
	if cfg.Password != "" {
		srvCfg.Auth = []vncserver.SecurityHandler{&vncserver.PasswordAuth{Password: cfg.Password}}
	}

	srv, err := vncserver.New(cfg.BindAddr, srvCfg)
	if err != nil {
		return nil, fmt.Errorf("rfbsurface: create server: %w", err)
	}
	s.server = srv
	grid.Surface = s
	return s, nil
}

// Serve runs the bounded-timeout RFB event pump until ctx is canceled.
// Each iteration yields for ~1ms before taking the session lock via
// withLock, so the PTY reader is never starved by back-to-back polls; the
// ingress callbacks all fire inside ProcessEvents, i.e. inside the
// critical section.
func (s *Surface) Serve(ctx context.Context, withLock func(func())) error {
	timeout := s.cfg.pollTimeout()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
		withLock(func() {
			s.server.ProcessEvents(timeout)
		})
	}
}

func (s *Surface) onConnect(clientID string) {
	s.mu.Lock()
	s.clients++
	s.mu.Unlock()
	if s.logf != nil {
		s.logf("rfbsurface: client %s connected", clientID)
	}
}

func (s *Surface) onDisconnect(clientID string) {
	s.mu.Lock()
	s.clients--
	s.mu.Unlock()
	if s.logf != nil {
		s.logf("rfbsurface: client %s disconnected", clientID)
	}
}

func (s *Surface) onKey(down bool, keysym uint32) {
	if s.input != nil {
		s.input.KeyEvent(down, inputbridge.Keysym(keysym))
	}
}

func (s *Surface) onPointer(buttonMask uint8, x, y int) {
	if s.input != nil {
		s.input.PointerEvent(buttonMask, x, y)
	}
}

func (s *Surface) onCutText(text string) {
	if s.input != nil {
		_ = s.input.SetCutText(text)
	}
}

// DirtyRect implements console.Surface.
func (s *Surface) DirtyRect(x0, y0, x1, y1 int) {
	if s.server != nil {
		s.server.FlushRect(x0, y0, x1-x0, y1-y0)
	}
}

// CopyRect implements console.Surface.
func (s *Surface) CopyRect(x0, y0, x1, y1, dx, dy int) {
	if s.server != nil {
		s.server.CopyRect(x0, y0, x1-x0, y1-y0, dx, dy)
	}
}

// Bell implements console.Surface.
func (s *Surface) Bell() {
	if s.server != nil {
		s.server.Bell()
	}
}

// SetCutText implements console.Surface: publishes text to every
// connected client as RFB cut text.
func (s *Surface) SetCutText(text string) {
	s.mu.Lock()
	s.cutText = text
	s.mu.Unlock()
	if s.server != nil {
		s.server.SetCutText(text)
	}
}

// ClientCount reports the number of currently connected RFB clients.
func (s *Surface) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

// Shutdown tears down the listener and any connected clients.
func (s *Surface) Shutdown() error {
	if s.server == nil {
		return nil
	}
	return s.server.Close()
}
