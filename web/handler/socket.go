package handler

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/w3lalitsaini/anti-movies/session"
)

const (
	// wsPingInterval is how often the gateway pings connected tabs.
	wsPingInterval = 10 * time.Second
	// wsReadDeadline is the maximum time to wait for a pong before considering the connection dead.
	wsReadDeadline = 90 * time.Second
	// wsWriteTimeout bounds a single frame write.
	wsWriteTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	HandshakeTimeout: 10 * time.Second,
	ReadBufferSize:   1024,
	WriteBufferSize:  1024,
	// Same-origin UI only; the CORS layer already restricts callers.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// sessionEvent is the frame pushed to every open tab on a session
// transition, so nav state converges everywhere at once — login in one tab
// logs in all of them, and a forced logout (expired token) clears all of
// them without a reload.
type sessionEvent struct {
	Type          string `json:"type"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
}

// WSHub tracks all active WebSocket connections so session transitions can
// be broadcast to them and so they can be closed during graceful shutdown.
// Create one in main, subscribe it to the session store, and pass it to the
// handler.
type WSHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	done  chan struct{} // closed on shutdown
}

func NewWSHub() *WSHub {
	return &WSHub{
		conns: make(map[*websocket.Conn]struct{}),
		done:  make(chan struct{}),
	}
}

func (h *WSHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *WSHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// BroadcastSession pushes the new session state to every connected tab.
// Shaped to be handed straight to session.Store.Subscribe; it runs inside
// the transitioning call, so writes are kept short and failures only drop
// the one dead connection.
func (h *WSHub) BroadcastSession(s *session.Session) {
	event := sessionEvent{Type: "session"}
	if s != nil {
		event.Authenticated = true
		event.Username = s.Username
		event.Role = s.Role
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(event); err != nil {
			slog.Debug("ws: broadcast write error", "error", err)
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}

// ping sends a control ping under the hub lock so it cannot interleave with
// a broadcast write.
func (h *WSHub) ping(conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout))
}

// Shutdown closes all active WebSocket connections and signals handlers to exit.
func (h *WSHub) Shutdown() {
	close(h.done)
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		_ = conn.Close()
	}
	h.conns = make(map[*websocket.Conn]struct{})
}

// WebSocketHandler returns a gin handler that manages WebSocket connections
// with lifecycle tracking via the hub. Connections carry no client-to-server
// protocol; the read loop exists only to detect closure and answer pings.
func WebSocketHandler(hub *WSHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.add(conn)
		defer func() {
			hub.remove(conn)
			_ = conn.Close()
		}()

		ticker := time.NewTicker(wsPingInterval)
		defer ticker.Stop()

		_ = conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
			return nil
		})

		readErr := make(chan error, 1)
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					readErr <- err
					return
				}
			}
		}()

		for {
			select {
			case <-hub.done:
				return
			case <-ticker.C:
				if err := hub.ping(conn); err != nil {
					slog.Debug("ws: ping write error", "error", err)
					return
				}
			case err := <-readErr:
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
					websocket.CloseNoStatusReceived,
				) {
					slog.Debug("ws: unexpected close", "error", err)
				}
				return
			}
		}
	}
}
