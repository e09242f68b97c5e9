// file: websocket/hub.go
package websocket

import (
	"context"
	"encoding/json"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"mentora-hub/logger"
	"mentora-hub/metrics"
	"mentora-hub/middleware"
	"mentora-hub/store"
)

// presence sweep settings
const (
	presenceTimeout  = 90 * time.Second
	presenceInterval = 30 * time.Second
)

// PresenceMessage tells watchers which admins have the dashboard open.
type PresenceMessage struct {
	Type   string   `json:"type"`
	Admins []string `json:"admins"`
}

// Hub fans store changes out to every open dashboard. It implements
// store.Publisher.
type Hub struct {
	register    chan *Connection
	unregister  chan *Connection
	broadcast   chan []byte
	connections map[*Connection]bool
	done        chan struct{}

	presence *Presence
	metrics  metrics.Recorder
	upgrader websocket.Upgrader
	count    atomic.Int64
}

// NewHub creates a hub. appURL is the public base URL whose host is
// accepted as a websocket origin.
func NewHub(m metrics.Recorder, appURL string) *Hub {
	if m == nil {
		m = metrics.Nop{}
	}
	host := ""
	if u, err := url.Parse(appURL); err == nil {
		host = u.Host
	}
	return &Hub{
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		broadcast:   make(chan []byte, 256),
		connections: make(map[*Connection]bool),
		done:        make(chan struct{}),
		presence:    NewPresence(),
		metrics:     m,
		upgrader:    newUpgrader(host),
	}
}

// Publish queues a change for every watcher. It never blocks: when the
// queue is full the change is dropped and watchers catch up on refresh.
func (h *Hub) Publish(change store.Change) {
	msg, err := json.Marshal(change)
	if err != nil {
		logger.Error.Printf("[Hub.Publish] Error marshalling change: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn.Printf("[Hub.Publish] broadcast queue full, dropping %s/%s", change.Collection, change.ID)
	}
}

// Count is the number of open connections.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// Run owns the connection set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(presenceInterval)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.connections {
				h.drop(c)
			}
			logger.Info.Println("[Hub.Run] stopped")
			return

		case c := <-h.register:
			h.connections[c] = true
			h.presence.UpdateHeartbeat(c.uid)
			h.changed()
			logger.Info.Printf("[Hub.Run] watcher %s connected (%d open)", c.uid, len(h.connections))

		case c := <-h.unregister:
			if _, ok := h.connections[c]; !ok {
				continue
			}
			h.drop(c)
			if !h.watching(c.uid) {
				h.presence.Remove(c.uid)
			}
			h.changed()
			logger.Info.Printf("[Hub.Run] watcher %s disconnected (%d open)", c.uid, len(h.connections))

		case msg := <-h.broadcast:
			h.fanOut(msg)

		case <-ticker.C:
			if removed := h.presence.CleanupInactiveSessions(presenceTimeout); len(removed) > 0 {
				h.fanOut(h.presenceMessage())
			}
		}
	}
}

// ServeLive upgrades GET /admin/live. It runs behind AdminRequired, which
// puts the admin's uid in the context.
func (h *Hub) ServeLive(c *gin.Context) {
	uid := c.GetString(middleware.ContextUID)
	wsConn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error.Printf("[ServeLive] WebSocket upgrade error: %v", err)
		return
	}
	h.attach(wsConn, uid)
}

func (h *Hub) attach(conn WSConn, uid string) *Connection {
	c := &Connection{conn: conn, send: make(chan []byte, sendBuffer), hub: h, uid: uid}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return nil
	}
	go c.writePump()
	go c.readPump()
	return c
}

// caller is the Run goroutine
func (h *Hub) fanOut(msg []byte) {
	for c := range h.connections {
		select {
		case c.send <- msg:
		default:
			logger.Warn.Printf("[Hub] watcher %v too slow, disconnecting", c.conn.RemoteAddr())
			h.drop(c)
		}
	}
}

// caller is the Run goroutine
func (h *Hub) drop(c *Connection) {
	delete(h.connections, c)
	close(c.send)
	h.count.Store(int64(len(h.connections)))
}

// caller is the Run goroutine
func (h *Hub) changed() {
	h.count.Store(int64(len(h.connections)))
	h.metrics.LiveWatchers(len(h.connections))
	h.fanOut(h.presenceMessage())
}

// caller is the Run goroutine
func (h *Hub) watching(uid string) bool {
	for c := range h.connections {
		if c.uid == uid {
			return true
		}
	}
	return false
}

func (h *Hub) presenceMessage() []byte {
	msg, _ := json.Marshal(PresenceMessage{Type: "presence", Admins: h.presence.Active()})
	return msg
}
