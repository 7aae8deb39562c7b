package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelfault/meltdown/internal/game"
)

// Hub fans notifications out to every client subscribed to a lobby and
// owns the deferred meltdown deadline timers. Rooms are keyed by lobby
// code.
type Hub struct {
	svc   *game.Service
	debug bool

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool

	timersMu sync.Mutex
	timers   map[string]*time.Timer

	upgrader websocket.Upgrader
}

// NewHub creates a hub over the game service. With debug on, every
// broadcast is logged.
func NewHub(svc *game.Service, debug bool) *Hub {
	return &Hub{
		svc:    svc,
		debug:  debug,
		rooms:  make(map[string]map[*Client]bool),
		timers: make(map[string]*time.Timer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Identity lives with the auth layer, which is out of scope here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the connection and starts the client pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	go client.writePump()
	go client.readPump()
}

func (h *Hub) subscribe(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room := h.rooms[code]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[code] = room
	}
	room[c] = true
}

func (h *Hub) unsubscribe(c *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room := h.rooms[code]; room != nil {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast sends an event to every subscriber of a lobby. Payloads are
// post-mutation snapshots, so no locks are needed here. A client whose
// send buffer is full is dropped rather than blocking the room.
func (h *Hub) Broadcast(code, event string, data any) {
	frame, err := json.Marshal(Message{Event: event, Data: marshalData(data)})
	if err != nil {
		log.Printf("broadcast marshal failed: event=%s err=%v", event, err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[code]))
	for c := range h.rooms[code] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if h.debug {
		log.Printf("Broadcasting: code=%s event=%s clients=%d", code, event, len(clients))
	}
	for _, c := range clients {
		c.trySend(frame)
	}
}

// ScheduleMeltdown arms the one-shot deadline check for an active
// meltdown. The timer fires once; re-arming replaces any previous timer.
func (h *Hub) ScheduleMeltdown(code string, deadline time.Time) {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()
	if t, ok := h.timers[code]; ok {
		t.Stop()
	}
	h.timers[code] = time.AfterFunc(time.Until(deadline), func() {
		h.timersMu.Lock()
		delete(h.timers, code)
		h.timersMu.Unlock()
		if snap := h.svc.CheckSabotageTimeout(code); snap != nil {
			h.Broadcast(code, EventLobbyUpdated, snap)
			h.Broadcast(code, EventGameEnded, snap)
		}
	})
}

// CancelMeltdown discards a pending deadline check once the emergency is
// moot (stabilized, round ended, lobby reset).
func (h *Hub) CancelMeltdown(code string) {
	h.timersMu.Lock()
	defer h.timersMu.Unlock()
	if t, ok := h.timers[code]; ok {
		t.Stop()
		delete(h.timers, code)
	}
}

func marshalData(data any) json.RawMessage {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("payload marshal failed: %v", err)
		return nil
	}
	return raw
}
