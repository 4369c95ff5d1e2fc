package websocket

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendQueueSize  = 256
)

// Client is one live connection to a viewer. A user with several tabs open
// holds several Clients, each counted separately in viewer counts.
type Client struct {
	Id          string
	UserId      uuid.UUID
	DisplayName string
	Role        string

	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound frames. Closed exactly once by the hub
	// on unregister.
	Send chan []byte

	mu     sync.Mutex
	room   *uuid.UUID
	closed bool
}

func newClient(hub *Hub, conn *websocket.Conn, userId uuid.UUID, displayName, role string) *Client {
	return &Client{
		Id:          uuid.NewString(),
		UserId:      userId,
		DisplayName: displayName,
		Role:        role,
		hub:         hub,
		conn:        conn,
		Send:        make(chan []byte, sendQueueSize),
	}
}

// Room returns the room this connection is currently joined to, or nil.
func (c *Client) Room() *uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

func (c *Client) setRoom(roomId *uuid.UUID) {
	c.mu.Lock()
	c.room = roomId
	c.mu.Unlock()
}

// markClosed is set by the hub right before it closes Send, so late
// SendEvent calls cannot write to a closed channel.
func (c *Client) markClosed() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SendEvent queues an envelope without blocking. A full queue means the
// client is too slow; it is dropped and cleaned up like a dead transport.
func (c *Client) SendEvent(env Envelope) {
	data, err := env.Marshal()
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- data:
	default:
		go c.hub.Unregister(c)
	}
}

// readPump pumps frames from the websocket connection to the gateway handler.
// Transport close or error from any state funnels into a single unregister.
func (c *Client) readPump(handler func(*Client, []byte)) {
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
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{"connection_id": c.Id, "error": err.Error()})
			}
			break
		}
		handler(c, message)
	}
}

// writePump pumps frames from the Send queue to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
