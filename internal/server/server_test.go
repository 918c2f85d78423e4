package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitas-015/hexplane/internal/config"
	"github.com/gravitas-015/hexplane/internal/network"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Render.IMax = 2
	cfg.Render.JMax = 2
	srv, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.cancel() })
	return srv
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandleGrid(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handleGrid(rec, httptest.NewRequest(http.MethodGet, "/grid.svg", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	// 3x3 address range from the test config.
	assert.Equal(t, 9, strings.Count(body, "<polygon"))
}

func TestHandleGridQueryOverrides(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/grid.svg?i_min=0&i_max=0&j_min=0&j_max=0&mode=hash", nil)
	rec := httptest.NewRecorder()
	srv.handleGrid(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<polygon"))
}

func TestHandleGridHugeRange(t *testing.T) {
	srv := newTestServer(t)

	urls := []string{
		"/grid.svg?i_min=-4611686018427387904&i_max=4611686018427387904",
		"/grid.svg?i_min=0&i_max=100000&j_min=0&j_max=100000",
	}
	for _, u := range urls {
		rec := httptest.NewRecorder()
		srv.handleGrid(rec, httptest.NewRequest(http.MethodGet, u, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, u)
	}
}

func TestHandleGridBadRange(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/grid.svg?i_min=5&i_max=1", nil)
	rec := httptest.NewRecorder()
	srv.handleGrid(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func dialWS(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func roundTrip(t *testing.T, ws *websocket.Conn, req interface{}) network.ClientMessage {
	t.Helper()
	require.NoError(t, ws.WriteJSON(req))

	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp network.ClientMessage // same envelope shape, raw payload
	require.NoError(t, ws.ReadJSON(&resp))
	return resp
}

func TestWebSocketLocate(t *testing.T) {
	ws := dialWS(t, newTestServer(t))

	resp := roundTrip(t, ws, map[string]interface{}{
		"type":    network.MsgTypeLocate,
		"payload": network.LocatePayload{X: 23.4, Y: 43.1},
	})

	require.Equal(t, network.MsgTypeAddress, resp.Type)
	var addr network.AddressPayload
	require.NoError(t, json.Unmarshal(resp.Payload, &addr))
	assert.Equal(t, int64(23), addr.I)
	assert.Equal(t, int64(33), addr.J)
}

func TestWebSocketOrigin(t *testing.T) {
	ws := dialWS(t, newTestServer(t))

	resp := roundTrip(t, ws, map[string]interface{}{
		"type":    network.MsgTypeOrigin,
		"payload": network.OriginPayload{I: -5, J: -3},
	})

	require.Equal(t, network.MsgTypeWorld, resp.Type)
	var world network.WorldPayload
	require.NoError(t, json.Unmarshal(resp.Payload, &world))
	assert.Equal(t, -5.0, world.X)
	assert.Equal(t, -1.0, world.Y)
}

func TestWebSocketOriginOverflow(t *testing.T) {
	ws := dialWS(t, newTestServer(t))

	resp := roundTrip(t, ws, map[string]interface{}{
		"type":    network.MsgTypeOrigin,
		"payload": map[string]int64{"i": 1<<53 + 7, "j": 0},
	})

	require.Equal(t, network.MsgTypeError, resp.Type)
	var perr network.ErrorPayload
	require.NoError(t, json.Unmarshal(resp.Payload, &perr))
	assert.Equal(t, "invalid_input", perr.Code)
}

func TestWebSocketUnknownType(t *testing.T) {
	ws := dialWS(t, newTestServer(t))

	resp := roundTrip(t, ws, map[string]interface{}{
		"type":    "teleport",
		"payload": map[string]int{},
	})

	require.Equal(t, network.MsgTypeError, resp.Type)
	var perr network.ErrorPayload
	require.NoError(t, json.Unmarshal(resp.Payload, &perr))
	assert.Equal(t, "unknown_message_type", perr.Code)
}

// Shutdown closes connections while their read pumps may still be
// dispatching replies, so sends after Close must be dropped, not panic.
func TestConnectionSendAfterClose(t *testing.T) {
	c := NewConnection(nil, newTestServer(t))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			c.SendError("internal_error", "late reply")
		}
	}()
	c.Close()
	<-done

	assert.NotPanics(t, func() {
		c.SendError("internal_error", "after close")
		c.Close()
	})
}

func TestWebSocketAuthRequired(t *testing.T) {
	cfg := config.Default()
	cfg.Auth.TokenSecret = "swordfish"
	srv, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.cancel() })

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := signToken(t, "swordfish", jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	ws, _, err := websocket.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	ws.Close()
}
