package live

import (
	"log"
	"net/http"
	"time"

	"auris/cart"
	"auris/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// WebSocketHandler upgrades the connection and subscribes the client to
// its session's cart updates and notices. The first frame is the current
// cart state so a fresh tab renders the badge immediately.
func WebSocketHandler(hub *Hub, sessions *cart.Sessions) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sid := utils.GetSessionIDFromRequest(r)
		if sid == "" {
			http.Error(w, "Missing session", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		client := &Client{
			Send:      make(chan []byte, 256),
			SessionID: sid,
		}

		store := sessions.Get(sid)
		unsubscribe := store.Subscribe(func(snap cart.Snapshot) {
			hub.PushCartUpdate(sid, snap)
		})

		// an open socket keeps the session alive past the idle TTL
		done := make(chan struct{})
		go keepAlive(sessions, sid, done)

		hub.register <- client
		go writePump(client, conn)
		go readPump(client, conn, hub, unsubscribe, done)

		hub.PushCartUpdate(sid, store.Snapshot())
	}
}

func keepAlive(sessions *cart.Sessions, sid string, done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sessions.Get(sid)
		case <-done:
			return
		}
	}
}

func writePump(c *Client, conn *websocket.Conn) {
	defer conn.Close()
	for msg := range c.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump drains the connection until it closes; clients send nothing
// meaningful, the socket exists for server pushes.
func readPump(c *Client, conn *websocket.Conn, hub *Hub, unsubscribe func(), done chan struct{}) {
	defer func() {
		close(done)
		unsubscribe()
		hub.unregister <- c
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
