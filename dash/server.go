// Package dash pushes live run telemetry to a browser dashboard over
// WebSocket. One hub per run; the driver broadcasts generation summaries
// and best-genome updates, the dashboard renders them.
package dash

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"evotune"
)

// Message is the envelope every broadcast uses.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	Time int64       `json:"time"`
}

// Message type constants.
const (
	MsgTypeGeneration = "generation"
	MsgTypeBest       = "best"
	MsgTypeReport     = "report"
	MsgTypeStatus     = "status"
)

// BestData is the payload sent when the champion improves.
type BestData struct {
	ID         string             `json:"id"`
	Generation int                `json:"generation"`
	Fitness    float64            `json:"fitness"`
	Params     map[string]float64 `json:"params"`
}

// Hub manages WebSocket connections and broadcasts.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Message
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	upgrader websocket.Upgrader
}

// NewHub creates a hub and starts its broadcast loop.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	go h.run()
	return h
}

// Serve starts the HTTP/WebSocket server on addr. Blocks.
func (h *Hub) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "dashboard.html")
	})
	mux.HandleFunc("/ws", h.handleWebSocket)
	return http.ListenAndServe(addr, corsMiddleware(mux))
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.register <- ws
	defer func() {
		h.unregister <- ws
		ws.Close()
	}()

	// Greet new connections so the dashboard knows it is live
	_ = ws.WriteJSON(Message{
		Type: MsgTypeStatus,
		Data: map[string]interface{}{"status": "running", "msg": "dashboard connected"},
		Time: time.Now().Unix(),
	})

	// Drain client messages; the dashboard may send pings
	for {
		var msg Message
		if err := ws.ReadJSON(&msg); err != nil {
			break
		}
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				if err := client.WriteJSON(message); err != nil {
					// Client disconnected, cleaned up by unregister
					continue
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast queues a message for every connected client. Non-blocking:
// a full queue drops the message rather than stalling the run loop.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	if h == nil {
		return
	}
	msg := Message{Type: msgType, Data: data, Time: time.Now().Unix()}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// SendGeneration broadcasts a generation summary.
func (h *Hub) SendGeneration(s evotune.GenerationSummary) {
	h.Broadcast(MsgTypeGeneration, s)
}

// SendBest broadcasts an improved champion with named parameters.
func (h *Hub) SendBest(g evotune.Genome, bounds evotune.Bounds) {
	params := make(map[string]float64, len(bounds))
	for i, p := range bounds {
		if i < len(g.Params) {
			params[p.Name] = g.Params[i]
		}
	}
	h.Broadcast(MsgTypeBest, BestData{
		ID:         g.ID,
		Generation: g.Generation,
		Fitness:    g.Fitness,
		Params:     params,
	})
}

// SendReport broadcasts the final report when the run stops.
func (h *Hub) SendReport(r evotune.FinalReport) {
	h.Broadcast(MsgTypeReport, r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FindAvailablePort finds an available port starting from startPort.
func FindAvailablePort(startPort int) int {
	for port := startPort; port < startPort+1000; port++ {
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
		if err == nil {
			ln.Close()
			return port
		}
	}
	return startPort // fallback
}
