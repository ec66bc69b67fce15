package events

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// Event names emitted on the broadcast channel.
const (
	TaskCreated       = "task:created"
	TaskUpdated       = "task:updated"
	TaskStatusUpdated = "task:statusUpdated"
	TaskDeleted       = "task:deleted"
)

// Message is the wire shape of one broadcast event.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Hub fans mutation events out to every connected client. Delivery is
// fire-and-forget: no filtering, no ordering guarantee beyond emission
// order, no replay. A disconnected client must re-fetch to resynchronize.
type Hub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and registers the connection. Incoming
// client frames are read and discarded; the read loop only exists to
// detect the close.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.Log.Warnf("websocket upgrade failed: %v", err)
		return
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	utils.Log.Debugf("websocket client connected: %s", conn.RemoteAddr())

	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			utils.Log.Debugf("websocket client disconnected: %s", conn.RemoteAddr())
			return
		}
	}
}

// Publish sends the event to every connected client. Write failures drop
// the connection; publishing never blocks on delivery acknowledgment.
func (h *Hub) Publish(event string, data any) {
	payload, err := utils.Json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.Log.Warnf("failed to marshal %s event: %v", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
