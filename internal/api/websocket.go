package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 100

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 5

	// snapshotBroadcastInterval paces state frames to viewers; the
	// simulation ticks faster than any client needs to repaint.
	snapshotBroadcastInterval = 50 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		if IsAllowedOrigin(origin) {
			return true
		}

		// Log rejected origin for security monitoring
		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// wsClient tracks a WebSocket connection with its source IP
type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub manages all WebSocket connections with DoS protection
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	// Connection limiting per IP
	wsLimiter *WebSocketRateLimiter

	// keys receives held-key updates from the controlling client
	keys *RemoteKeys
}

// NewWebSocketHub creates a new hub with connection limiting
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
		keys:       NewRemoteKeys(),
	}
}

// Keys returns the shared key-state sink fed by client input messages.
// Wire this into a KeyboardSource to drive a fighter from the browser.
func (h *WebSocketHub) Keys() *RemoteKeys {
	return h.keys
}

// Run starts the hub
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()

			count := len(h.clients)
			log.Printf("📱 Client connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				// Release the connection slot for this IP
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

			count := len(h.clients)
			log.Printf("📱 Client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.clients {
				err := conn.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					conn.Close()
					h.mu.RUnlock()
					h.mu.Lock()
					if client, ok := h.clients[conn]; ok {
						h.wsLimiter.Release(client.ip)
						delete(h.clients, conn)
					}
					h.mu.Unlock()
					h.mu.RLock()
				}
			}
			h.mu.RUnlock()
			IncrementWSMessages()
		}
	}
}

// Broadcast sends a message to all connected clients
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	msg := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	jsonBytes, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.broadcast <- jsonBytes:
	default:
		// Channel full, skip (backpressure)
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop starts streaming match snapshots periodically
func (h *WebSocketHub) StartBroadcastLoop(engine EngineInterface) {
	ticker := time.NewTicker(snapshotBroadcastInterval)

	go func() {
		var lastTick uint64
		for range ticker.C {
			if h.ClientCount() == 0 {
				continue
			}

			snap := engine.Snapshot()
			if snap == nil || snap.Tick == lastTick {
				continue
			}
			lastTick = snap.Tick

			h.Broadcast("match:state", snap)
		}
	}()
}

// HandleWebSocket handles incoming WebSocket connections with DoS protection
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get client IP for rate limiting
	ip := GetClientIP(r)

	// Check total connection limit
	h.mu.RLock()
	totalConnections := len(h.clients)
	h.mu.RUnlock()

	if totalConnections >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached (%d)", totalConnections)
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	// Check per-IP connection limit
	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	// Upgrade to WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip) // Release the slot we reserved
		return
	}

	// Register the connection
	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	// Read messages (input from the controlling client)
	go func() {
		defer func() {
			h.unregister <- conn
		}()

		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				break
			}

			var msg struct {
				Event string `json:"event"`
				Data  struct {
					Code string `json:"code"`
					Down bool   `json:"down"`
				} `json:"data"`
			}
			if err := json.Unmarshal(message, &msg); err != nil {
				continue
			}

			switch msg.Event {
			case "input:key":
				h.keys.Set(msg.Data.Code, msg.Data.Down)
			case "input:clear":
				h.keys.Clear()
			}
		}
	}()
}

// RemoteKeys is a thread-safe held-key map fed by WebSocket input
// messages. It satisfies game.KeyState so a KeyboardSource can drive a
// fighter from a remote client.
type RemoteKeys struct {
	mu   sync.RWMutex
	down map[string]bool
}

// NewRemoteKeys creates an empty key-state sink.
func NewRemoteKeys() *RemoteKeys {
	return &RemoteKeys{down: make(map[string]bool, 12)}
}

// IsDown reports whether a key code is currently held.
func (rk *RemoteKeys) IsDown(code string) bool {
	rk.mu.RLock()
	defer rk.mu.RUnlock()
	return rk.down[code]
}

// Set records a key transition from the client.
func (rk *RemoteKeys) Set(code string, down bool) {
	rk.mu.Lock()
	defer rk.mu.Unlock()
	if down {
		rk.down[code] = true
	} else {
		delete(rk.down, code)
	}
}

// Clear releases all held keys (sent when the client loses focus).
func (rk *RemoteKeys) Clear() {
	rk.mu.Lock()
	defer rk.mu.Unlock()
	rk.down = make(map[string]bool, 12)
}
