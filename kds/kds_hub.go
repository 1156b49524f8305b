package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-tables/utils"
)

// Event types
const (
	EventTableCreate     = "table_create"
	EventTableUpdate     = "table_update"
	EventTableDelete     = "table_delete"
	EventBookingCreate   = "booking_create"
	EventBookingDelete   = "booking_delete"
	EventDashboardUpdate = "dashboard_update"
	EventActivity        = "activity"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 64
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	role string
	send chan []byte
}

// Hub tracks the floor display clients (staff, admin) and fans messages out to them.
// Each client has its own queue and writer, so a slow display never blocks Broadcast.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// RegisterClient starts delivering to conn. When snapshot is set, its message is
// queued ahead of every broadcast that follows registration.
func (h *Hub) RegisterClient(conn *websocket.Conn, role string, snapshot func() Message) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	if snapshot != nil {
		msg := snapshot()
		if data, err := json.Marshal(msg); err != nil {
			utils.ErrorLogger.Printf("Error marshaling %s: %v", msg.Event, err)
		} else {
			c.send <- data
		}
	}
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writePump(c)
}

func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeLocked(conn)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues msg for every client. A client whose queue is full is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.Debugf("Broadcasting %s to %d clients", msg.Event, len(h.clients))

	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.Printf("Dropping slow %s client, %s not delivered", c.role, msg.Event)
			h.removeLocked(conn)
		}
	}
}

func (h *Hub) writePump(c *client) {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error writing to %s client: %v", c.role, err)
			h.UnregisterClient(c.conn)
			return
		}
	}
}

func (h *Hub) removeLocked(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(c.send)
	conn.Close()
}
