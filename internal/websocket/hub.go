package websocket

import (
	"context"
	"fmt"
	"sync"

	"liveshop-chat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub is the room membership registry and fan-out core. It owns the only
// shared mutable state in the process: which connection belongs to which
// room. Membership mutations are serialized by one mutex so join/leave/count
// are linearizable per room; delivery to Send queues never blocks, so a slow
// room cannot stall another.
type Hub struct {
	// clients: connection id -> client, membership in this map is what makes
	// unregister idempotent under close/error races.
	clients map[string]*Client

	// rooms: room id -> connection id -> client.
	rooms map[uuid.UUID]map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *roomBroadcast
	exports    chan uuid.UUID

	mu sync.RWMutex

	// Redis carries per-room viewer counts for storefront pages; it is also
	// the seam where a pub/sub backplane would attach if the gateway ever
	// runs multi-instance.
	rdb *redis.Client

	logger logger.ILogger
}

type roomBroadcast struct {
	RoomId  uuid.UUID
	Data    []byte
	Exclude string // connection id to skip
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[uuid.UUID]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan *roomBroadcast, 256),
		exports:    make(chan uuid.UUID, 64),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.exportLoop()
	}
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.Id] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"connection_id": client.Id, "user_id": client.UserId})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.Id]; ok {
				h.removeFromRoomLocked(client)
				delete(h.clients, client.Id)
				client.markClosed()
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"connection_id": client.Id, "user_id": client.UserId})
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			h.deliverLocked(msg.RoomId, msg.Data, msg.Exclude)
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Join adds the connection to a room and announces it. A connection already
// joined elsewhere is moved: the old room sees a leave before the new room
// sees the join. Returns the new viewer count.
func (h *Hub) Join(client *Client, roomId uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A connection the run loop already unregistered can still deliver a
	// buffered join frame (close/error race, or a slow-queue drop).
	// Admitting it would put a closed Send queue back into the room.
	if client.isClosed() {
		return len(h.rooms[roomId])
	}

	if current := client.Room(); current != nil {
		if *current == roomId {
			return len(h.rooms[roomId])
		}
		h.removeFromRoomLocked(client)
	}

	if _, ok := h.rooms[roomId]; !ok {
		h.rooms[roomId] = make(map[string]*Client)
	}
	h.rooms[roomId][client.Id] = client
	client.setRoom(&roomId)

	count := len(h.rooms[roomId])
	h.announceLocked(roomId, Envelope{Type: EventUserJoined, Data: UserJoinedPayload{
		DisplayName: client.DisplayName,
		Role:        client.Role,
		ViewerCount: count,
	}})
	h.announceLocked(roomId, Envelope{Type: EventViewerCount, Data: ViewerCountPayload{Count: count}})
	h.exportViewerCount(roomId)

	return count
}

// Leave removes the connection from the room if present. Safe to call for a
// connection that already left; disconnect races never error.
func (h *Hub) Leave(client *Client, roomId uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current := client.Room(); current != nil && *current == roomId {
		h.removeFromRoomLocked(client)
	}
	return len(h.rooms[roomId])
}

func (h *Hub) ViewerCount(roomId uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomId])
}

// BroadcastToRoom queues an envelope for every connection in the room. Events
// queued for the same room are delivered in queueing order.
func (h *Hub) BroadcastToRoom(roomId uuid.UUID, env Envelope, exclude string) error {
	data, err := env.Marshal()
	if err != nil {
		return err
	}
	h.broadcast <- &roomBroadcast{RoomId: roomId, Data: data, Exclude: exclude}
	return nil
}

// removeFromRoomLocked takes the connection out of its current room and
// announces the departure. Caller holds h.mu.
func (h *Hub) removeFromRoomLocked(client *Client) {
	current := client.Room()
	if current == nil {
		return
	}
	roomId := *current

	if members, ok := h.rooms[roomId]; ok {
		delete(members, client.Id)
		if len(members) == 0 {
			delete(h.rooms, roomId)
		}
	}
	client.setRoom(nil)

	count := len(h.rooms[roomId])
	h.announceLocked(roomId, Envelope{Type: EventUserLeft, Data: UserLeftPayload{
		DisplayName: client.DisplayName,
		ViewerCount: count,
	}})
	h.announceLocked(roomId, Envelope{Type: EventViewerCount, Data: ViewerCountPayload{Count: count}})
	h.exportViewerCount(roomId)
}

// announceLocked delivers a membership event inline, under the lock, so join
// and leave announcements interleave in the order the mutations happened.
func (h *Hub) announceLocked(roomId uuid.UUID, env Envelope) {
	data, err := env.Marshal()
	if err != nil {
		return
	}
	h.deliverLocked(roomId, data, "")
}

// deliverLocked fans one frame out to a room. A participant whose queue is
// full is scheduled for unregister; delivery to the rest continues. Closing
// happens under h.mu, so a client passing the closed check here cannot have
// its Send closed mid-delivery.
func (h *Hub) deliverLocked(roomId uuid.UUID, data []byte, exclude string) {
	for id, client := range h.rooms[roomId] {
		if id == exclude || client.isClosed() {
			continue
		}
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Send queue full, dropping client", map[string]interface{}{"connection_id": id})
			go h.Unregister(client)
		}
	}
}

// exportViewerCount queues a room for a redis viewer-count write. Best-effort;
// chat keeps working if redis is down or absent. Dropping an enqueue when the
// buffer is full is safe: the worker reads the current count per write, and a
// full buffer guarantees a later write that observes this mutation.
func (h *Hub) exportViewerCount(roomId uuid.UUID) {
	if h.rdb == nil {
		return
	}
	select {
	case h.exports <- roomId:
	default:
	}
}

// exportLoop is the single writer of the redis viewer-count keys. One worker
// reading the live room size at write time means a newer count can never be
// overwritten by an older one.
func (h *Hub) exportLoop() {
	for roomId := range h.exports {
		key := fmt.Sprintf("chat:viewers:%s", roomId)
		count := h.ViewerCount(roomId)
		if err := h.rdb.Set(context.Background(), key, count, 0).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to export viewer count", map[string]interface{}{"room_id": roomId, "error": err.Error()})
		}
	}
}
