package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

func newHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewHub()
	engine := gin.New()
	engine.GET("/ws", hub.HandleWS)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestPublishReachesAllClients(t *testing.T) {
	hub, srv := newHubServer(t)
	first := dialWS(t, srv)
	second := dialWS(t, srv)
	waitForClients(t, hub, 2)

	hub.Publish(TaskStatusUpdated, map[string]any{"id": 7, "status": "done"})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Event string `json:"event"`
			Data  struct {
				ID     int    `json:"id"`
				Status string `json:"status"`
			} `json:"data"`
		}
		require.NoError(t, utils.Json.Unmarshal(payload, &msg))
		assert.Equal(t, TaskStatusUpdated, msg.Event)
		assert.Equal(t, 7, msg.Data.ID)
		assert.Equal(t, "done", msg.Data.Status)
	}
}

func TestDisconnectedClientIsDropped(t *testing.T) {
	hub, srv := newHubServer(t)
	conn := dialWS(t, srv)
	waitForClients(t, hub, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 0)

	// publishing to an empty hub must not panic
	hub.Publish(TaskDeleted, map[string]any{"id": 1})
}

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub()
	hub.Publish(TaskCreated, map[string]any{"id": 1})
	assert.Zero(t, hub.ClientCount())
}
