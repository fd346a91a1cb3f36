package wsbridge

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	router := mux.NewRouter()
	New("127.0.0.1:1", nil).Routes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

// A fake RFB endpoint that greets and then echoes stands in for the real
// listener; the bridge only moves bytes, so echo is enough to prove both
// directions.
func TestWebsockifyProxiesBothDirections(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		if _, err := conn.Write([]byte("RFB 003.008\n")); err != nil {
			return
		}
		_, _ = io.Copy(conn, conn)
	}()

	router := mux.NewRouter()
	New(ln.Addr().String(), t.Logf).Routes(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/websockify"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	_, greeting, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, []byte("RFB 003.008\n"), greeting)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("abc")))
	_, echoed, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), echoed)
}
