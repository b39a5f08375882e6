package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, h *Hub, userID string) *websocket.Conn {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, r.URL.Query().Get("userId"))
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?userId=" + userID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 10*time.Millisecond)
	return ws
}

func TestHubPushesToConnectedUser(t *testing.T) {
	h := NewHub()
	ws := dialHub(t, h, "u1")

	err := h.Notify(context.Background(), hearingMessage())
	require.NoError(t, err)

	var got struct {
		Event string  `json:"event"`
		Data  Message `json:"data"`
	}
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&got))
	assert.Equal(t, EventHearingScheduled, got.Event)
	assert.Equal(t, "Hearing scheduled: First hearing", got.Data.Subject)
	assert.Equal(t, "https://efiling.example/meeting/meeting-1", got.Data.Link)
}

func TestHubSkipsUnconnectedUsers(t *testing.T) {
	h := NewHub()

	assert.NoError(t, h.Notify(context.Background(), hearingMessage()))
	assert.Equal(t, 0, h.Connected("u1"))
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	h := NewHub()
	ws := dialHub(t, h, "u2")

	require.NoError(t, ws.Close())

	assert.Eventually(t, func() bool { return h.Connected("u2") == 0 }, time.Second, 10*time.Millisecond)
}
