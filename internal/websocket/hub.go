package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub fans evaluator output out to dashboard clients subscribed to
// per-bike rooms. Delivery is fire-and-forget: slow clients are
// dropped rather than blocking the intake path. A single broadcast
// loop preserves per-bike event order as published.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
	done       chan struct{}
}

// NewHub creates a new fanout hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event, 1000),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		done: make(chan struct{}),
	}
}

// Start begins the hub's main loop
func (h *Hub) Start() error {
	go h.run()
	log.Println("WebSocket hub started")
	return nil
}

// Stop gracefully shuts down the hub
func (h *Hub) Stop() error {
	close(h.done)

	h.mutex.Lock()
	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
	h.clients = make(map[string]*Client)
	h.mutex.Unlock()

	log.Println("WebSocket hub stopped")
	return nil
}

func (h *Hub) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client.ID] = client
			h.mutex.Unlock()
			log.Printf("WebSocket client %s registered (bikes: %v)", client.ID, client.BikeIDs)
			go h.handleClient(client)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				if client.Conn != nil {
					client.Conn.Close()
				}
			}
			h.mutex.Unlock()
			log.Printf("WebSocket client %s unregistered", client.ID)

		case event := <-h.broadcast:
			h.broadcastToRoom(event)

		case <-ticker.C:
			h.healthCheck()

		case <-h.done:
			return
		}
	}
}

// RegisterClient registers a new dashboard connection. An empty bikeIDs
// slice subscribes the client to all rooms.
func (h *Hub) RegisterClient(clientID string, conn *websocket.Conn, bikeIDs []string) error {
	client := &Client{
		ID:       clientID,
		Conn:     conn,
		BikeIDs:  bikeIDs,
		Send:     make(chan Event, 256),
		LastPing: time.Now(),
	}

	h.register <- client
	return nil
}

// UnregisterClient removes a dashboard connection
func (h *Hub) UnregisterClient(clientID string) error {
	h.mutex.RLock()
	client, exists := h.clients[clientID]
	h.mutex.RUnlock()

	if exists {
		h.unregister <- client
	}
	return nil
}

// PublishStatus pushes a status snapshot event to the bike's room.
func (h *Hub) PublishStatus(bikeID string, snapshot interface{}) {
	h.publish(Event{
		Type:      EventTypeStatus,
		BikeID:    bikeID,
		Data:      snapshot,
		Timestamp: time.Now(),
	})
}

// PublishAlert pushes an alert event to the bike's room.
func (h *Hub) PublishAlert(bikeID string, alert interface{}) {
	h.publish(Event{
		Type:      EventTypeAlert,
		BikeID:    bikeID,
		Data:      alert,
		Timestamp: time.Now(),
	})
}

func (h *Hub) publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("Broadcast channel full, dropping %s event for bike %s", event.Type, event.BikeID)
	}
}

// ConnectedClients returns the number of connected clients
func (h *Hub) ConnectedClients() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// GetUpgrader returns the WebSocket upgrader for the HTTP handler
func (h *Hub) GetUpgrader() *websocket.Upgrader {
	return &h.upgrader
}

func (h *Hub) broadcastToRoom(event Event) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, client := range h.clients {
		if !inRoom(client, event.BikeID) {
			continue
		}
		select {
		case client.Send <- event:
		default:
			log.Printf("Client %s send channel full, dropping event", client.ID)
		}
	}
}

// inRoom reports whether the client subscribed to the bike's room.
func inRoom(client *Client, bikeID string) bool {
	if len(client.BikeIDs) == 0 {
		return true
	}
	for _, id := range client.BikeIDs {
		if id == bikeID {
			return true
		}
	}
	return false
}

func (h *Hub) handleClient(client *Client) {
	defer func() {
		h.unregister <- client
	}()

	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.LastPing = time.Now()
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go h.writeMessages(client)

	// Drain incoming messages; clients only send pings.
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for client %s: %v", client.ID, err)
			}
			break
		}
	}
}

func (h *Hub) writeMessages(client *Client) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteJSON(event); err != nil {
				log.Printf("Error writing to client %s: %v", client.ID, err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Error sending ping to client %s: %v", client.ID, err)
				return
			}
		}
	}
}

// healthCheck removes clients that stopped answering pings.
func (h *Hub) healthCheck() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	now := time.Now()
	for clientID, client := range h.clients {
		if now.Sub(client.LastPing) > 90*time.Second {
			log.Printf("Client %s timed out, removing", clientID)
			delete(h.clients, clientID)
			close(client.Send)
			if client.Conn != nil {
				client.Conn.Close()
			}
		}
	}
}
