// Package wsbridge exposes the in-process RFB TCP listener over a
// websockify-compatible WebSocket endpoint, so browser-based noVNC clients
// can reach the console without a native VNC client.
package wsbridge

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// noVNC requests the "binary" subprotocol; accept any origin since the
	// console is typically reached through an operator-controlled reverse
	// proxy, not directly from third-party pages.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler bridges WebSocket connections to the console's RFB TCP listener.
type Handler struct {
	rfbAddr string
	logf    func(format string, args ...any)
}

// New creates a Handler that dials rfbAddr (the RFB server's own listen
// address) once per incoming WebSocket connection.
func New(rfbAddr string, logf func(string, ...any)) *Handler {
	return &Handler{rfbAddr: rfbAddr, logf: logf}
}

func (h *Handler) logln(format string, args ...any) {
	if h.logf != nil {
		h.logf(format, args...)
	}
}

// Routes registers /websockify and /healthz on router.
func (h *Handler) Routes(router *mux.Router) {
	router.HandleFunc("/websockify", h.serveWebsockify)
	router.HandleFunc("/healthz", h.serveHealthz)
}

func (h *Handler) serveHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) serveWebsockify(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logln("wsbridge: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	rfb, err := net.DialTimeout("tcp", h.rfbAddr, 5*time.Second)
	if err != nil {
		h.logln("wsbridge: dial rfb %s: %v", h.rfbAddr, err)
		return
	}
	defer rfb.Close()

	done := make(chan struct{})
	var closeOnce sync.Once
	closeDone := func() { closeOnce.Do(func() { close(done) }) }

	go h.pumpTCPToWS(conn, rfb, done, closeDone)
	h.pumpWSToTCP(conn, rfb, done)
	closeDone()
}

// pumpTCPToWS reads RFB server bytes and forwards each chunk as a binary
// WebSocket frame, with a ping ticker keeping idle connections alive.
func (h *Handler) pumpTCPToWS(conn *websocket.Conn, rfb net.Conn, done <-chan struct{}, closeDone func()) {
	defer closeDone()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	buf := make([]byte, 32*1024)
	readCh := make(chan []byte)
	errCh := make(chan error, 1)

	go func() {
		for {
			n, err := rfb.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case readCh <- chunk:
				case <-done:
					return
				}
			}
			if err != nil {
				errCh <- err
				return
			}
		}
	}()

	for {
		select {
		case chunk := <-readCh:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
				return
			}
		case <-errCh:
			return
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// pumpWSToTCP reads binary frames from the browser and writes them to the
// RFB connection until the WebSocket closes or done fires.
func (h *Handler) pumpWSToTCP(conn *websocket.Conn, rfb net.Conn, done <-chan struct{}) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-done:
			return
		default:
		}
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		if _, err := rfb.Write(message); err != nil {
			h.logln("wsbridge: write to rfb failed: %v", err)
			return
		}
	}
}
