package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"auris/cart"
	"auris/models"
)

// Client is one websocket subscriber, keyed to its session.
type Client struct {
	Send      chan []byte
	SessionID string
}

type broadcastMsg struct {
	SessionID string
	Data      []byte
}

// Hub fans cart snapshots and notices out to the websocket clients of each
// session. It is the process-boundary end of the cart store's listener
// mechanism: one session can watch its badge update from several tabs.
type Hub struct {
	sessions   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	once       sync.Once
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.sessions[c.SessionID] == nil {
				h.sessions[c.SessionID] = make(map[*Client]bool)
			}
			h.sessions[c.SessionID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.sessions[c.SessionID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.sessions[m.SessionID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.sessions[m.SessionID], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for _, conns := range h.sessions {
				for c := range conns {
					close(c.Send)
				}
			}
			h.sessions = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	h.once.Do(func() { close(h.quit) })
}

// outboundPayload is what every subscriber of a session receives.
type outboundPayload struct {
	Action    string         `json:"action"` // "cart" or "notice"
	Cart      *cart.Snapshot `json:"cart,omitempty"`
	Notice    *models.Notice `json:"notice,omitempty"`
	Timestamp int64          `json:"timestamp"`
}

// PushCartUpdate broadcasts a cart snapshot to the session's clients.
func (h *Hub) PushCartUpdate(sessionID string, snap cart.Snapshot) {
	h.push(sessionID, outboundPayload{
		Action:    "cart",
		Cart:      &snap,
		Timestamp: time.Now().Unix(),
	})
}

// PushNotice broadcasts a secondary notice, e.g. the email send outcome.
func (h *Hub) PushNotice(sessionID string, n models.Notice) {
	h.push(sessionID, outboundPayload{
		Action:    "notice",
		Notice:    &n,
		Timestamp: time.Now().Unix(),
	})
}

func (h *Hub) push(sessionID string, out outboundPayload) {
	data, err := json.Marshal(out)
	if err != nil {
		log.Println("live payload marshal error:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{SessionID: sessionID, Data: data}:
	case <-h.quit:
	}
}
