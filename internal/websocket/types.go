package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// Event kinds pushed to dashboard subscribers.
const (
	EventTypeStatus = "status"
	EventTypeAlert  = "alert"
)

// Event is one real-time message scoped to a bike's room.
type Event struct {
	Type      string      `json:"type"`
	BikeID    string      `json:"bikeId"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client represents one dashboard WebSocket connection. A client with
// no BikeIDs receives every bike's events.
type Client struct {
	ID       string
	Conn     *websocket.Conn
	BikeIDs  []string
	Send     chan Event
	LastPing time.Time
}
