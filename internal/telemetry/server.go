package telemetry

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/soren-h/plantlab/internal/sim"
)

// Frame is one broadcast sample of a running simulation.
type Frame struct {
	Model   string    `json:"model"`
	Time    float64   `json:"t"`
	State   []float64 `json:"state"`
	Control []float64 `json:"control"`
}

// Hub fans live simulation frames out to websocket subscribers. It
// implements sim.Observer, so it can be attached directly to a simulator.
// Slow subscribers are dropped rather than allowed to stall the run.
type Hub struct {
	model    string
	stride   int
	step     int
	upgrader websocket.Upgrader

	statePool *sim.StatePool

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewHub creates a hub for a model, emitting every stride-th frame.
func NewHub(model string, stride int) *Hub {
	if stride < 1 {
		stride = 1
	}
	return &Hub{
		model:  model,
		stride: stride,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and keeps it subscribed until the
// peer closes it or a write fails.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain control frames so pings and close handshakes are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

// OnStep implements sim.Observer. The state copy is pooled: Broadcast
// writes synchronously, so the slice is free again once it returns.
func (h *Hub) OnStep(x sim.State, u sim.Control, t float64) {
	h.step++
	if h.step%h.stride != 0 {
		return
	}

	if h.statePool == nil {
		h.statePool = sim.NewStatePool(len(x))
	}
	state := h.statePool.GetAndCopy(x)

	h.Broadcast(Frame{
		Model:   h.model,
		Time:    t,
		State:   state,
		Control: append([]float64(nil), u...),
	})
	h.statePool.Put(state)
}

// Broadcast sends a frame to every subscriber, dropping any whose write
// fails.
func (h *Hub) Broadcast(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(frame); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of live subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		conn.Close()
		delete(h.clients, conn)
	}
}
