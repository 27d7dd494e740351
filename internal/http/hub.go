package http

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/kicker-league/internal/docstore"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// SnapshotMessage is pushed to websocket subscribers whenever the watched
// path changes.
type SnapshotMessage struct {
	Type    string            `json:"type"`
	Payload docstore.Snapshot `json:"payload"`
}

// Client is one websocket connection watching a single store path.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	Room string

	mu     sync.Mutex
	closed bool
}

type room struct {
	clients map[*Client]struct{}
	cancel  func()
}

// Hub fans store change notifications out to websocket clients. Clients
// watching the same path share one store subscription.
type Hub struct {
	store docstore.Store

	mu    sync.Mutex
	rooms map[string]*room
}

func NewHub(store docstore.Store) *Hub {
	return &Hub{
		store: store,
		rooms: make(map[string]*room),
	}
}

func newClient(hub *Hub, conn *websocket.Conn, path string) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		Room: path,
	}
}

// Register adds c to its room. The first client of a room opens the store
// subscription, whose initial snapshot reaches c. Later clients get the
// current snapshot directly.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if rm, ok := h.rooms[c.Room]; ok {
		rm.clients[c] = struct{}{}
		log.Debug("Client joined room", "room", c.Room, "clients", len(rm.clients))
		h.mu.Unlock()
		h.sendCurrent(c)
		return
	}
	rm := &room{clients: map[*Client]struct{}{c: {}}}
	h.rooms[c.Room] = rm
	h.mu.Unlock()
	log.Info("Opened room", "room", c.Room)

	path := c.Room
	cancel := h.store.Subscribe(path, func(snap docstore.Snapshot) {
		h.BroadcastToRoom(path, snap)
	})

	h.mu.Lock()
	if h.rooms[path] == rm {
		rm.cancel = cancel
		h.mu.Unlock()
		return
	}
	// Every client left while the subscription was being opened.
	h.mu.Unlock()
	cancel()
}

// Unregister removes c and closes the room once it is empty.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	rm, ok := h.rooms[c.Room]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := rm.clients[c]; !member {
		h.mu.Unlock()
		return
	}
	delete(rm.clients, c)
	c.close()
	var cancel func()
	if len(rm.clients) == 0 {
		delete(h.rooms, c.Room)
		cancel = rm.cancel
		log.Info("Closed room", "room", c.Room)
	}
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// BroadcastToRoom sends snap to every client in the room. Slow clients miss
// the update rather than stall the writer that triggered it.
func (h *Hub) BroadcastToRoom(path string, snap docstore.Snapshot) {
	msg, err := encodeSnapshot(snap)
	if err != nil {
		log.Error("Failed to encode snapshot", "room", path, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	rm, ok := h.rooms[path]
	if !ok {
		return
	}
	for c := range rm.clients {
		c.enqueue(msg)
	}
}

// Clients reports how many clients are watching path.
func (h *Hub) Clients(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if rm, ok := h.rooms[path]; ok {
		return len(rm.clients)
	}
	return 0
}

func (h *Hub) sendCurrent(c *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	snap, err := h.store.Get(ctx, c.Room)
	if err != nil {
		log.Error("Failed to read snapshot for new client", "room", c.Room, "error", err)
		return
	}
	msg, err := encodeSnapshot(snap)
	if err != nil {
		log.Error("Failed to encode snapshot", "room", c.Room, "error", err)
		return
	}
	c.enqueue(msg)
}

func encodeSnapshot(snap docstore.Snapshot) ([]byte, error) {
	return json.Marshal(SnapshotMessage{Type: "snapshot", Payload: snap})
}

func (c *Client) enqueue(msg []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- msg:
	default:
		log.Warn("Client send buffer full, dropping update", "room", c.Room)
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.send)
		c.closed = true
	}
}

// ReadPump drains the connection so pongs and close frames are handled.
// Subscribers never send anything meaningful.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Websocket closed unexpectedly", "room", c.Room, "error", err)
			}
			return
		}
	}
}

// WritePump writes queued snapshots and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Warn("Failed to write to websocket", "room", c.Room, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
