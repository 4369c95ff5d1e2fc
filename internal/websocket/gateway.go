package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"liveshop-chat-be/internal/pkg/logger"
	"liveshop-chat-be/internal/pkg/serverutils"
	"liveshop-chat-be/internal/service"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Gateway dispatches inbound chat events for one hub. Every failure is
// reported only to the initiating connection; room broadcasts happen only
// after the authoritative state change succeeded.
type Gateway struct {
	hub    *Hub
	chat   service.IChatService
	rooms  service.IRoomService
	logger logger.ILogger

	// One mutex per room serializes append -> broadcast-enqueue for
	// send-message, so new-message events enter the broadcast queue in
	// store-id order. Appends for different rooms never wait on each other.
	roomLocks sync.Map
}

func NewGateway(hub *Hub, chat service.IChatService, rooms service.IRoomService, log logger.ILogger) *Gateway {
	return &Gateway{
		hub:    hub,
		chat:   chat,
		rooms:  rooms,
		logger: log,
	}
}

// ServeClient attaches a fresh connection to the hub and runs its pumps until
// the transport closes. Blocks for the lifetime of the connection.
func (g *Gateway) ServeClient(conn *websocket.Conn, caller *serverutils.Caller) {
	client := newClient(g.hub, conn, caller.UserId, caller.DisplayName, caller.Role)
	g.hub.Register(client)

	go client.writePump()
	client.readPump(g.HandleEvent)
}

func (g *Gateway) HandleEvent(client *Client, raw []byte) {
	var ev InboundEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		client.SendEvent(errorEnvelope("VALIDATION_ERROR", "invalid event format", false))
		return
	}

	switch ev.Type {
	case EventJoin:
		g.handleJoin(client, ev.RoomId)
	case EventLeave:
		g.hub.Leave(client, ev.RoomId)
	case EventSendMessage:
		g.handleSendMessage(client, ev.RoomId, ev.Body)
	case EventTypingStart:
		g.handleTyping(client, ev.RoomId, true)
	case EventTypingStop:
		g.handleTyping(client, ev.RoomId, false)
	case EventDeleteMessage:
		g.handleDeleteMessage(client, ev.RoomId, ev.MessageId)
	default:
		client.SendEvent(errorEnvelope("VALIDATION_ERROR", "unknown event type", false))
	}
}

// handleJoin admits the connection only when the room exists and is live. The
// hub announces user-joined and viewer-count to the whole room, the joiner
// included, so its UI shows the authoritative count.
func (g *Gateway) handleJoin(client *Client, roomId uuid.UUID) {
	room, err := g.rooms.RoomInfo(context.Background(), roomId)
	if err != nil {
		g.sendError(client, err)
		return
	}
	if !room.IsLive {
		client.SendEvent(errorEnvelope("ROOM_NOT_LIVE", "room is not live", false))
		return
	}

	g.hub.Join(client, roomId)
}

func (g *Gateway) handleSendMessage(client *Client, roomId uuid.UUID, body string) {
	if !g.isJoined(client, roomId) {
		client.SendEvent(errorEnvelope("VALIDATION_ERROR", "join the room before sending messages", false))
		return
	}

	lock := g.roomLock(roomId)
	lock.Lock()
	defer lock.Unlock()

	caller := &serverutils.Caller{UserId: client.UserId, DisplayName: client.DisplayName, Role: client.Role}
	msg, err := g.chat.PostMessage(context.Background(), roomId, caller, body)
	if err != nil {
		g.sendError(client, err)
		return
	}

	if err := g.hub.BroadcastToRoom(roomId, newMessageEnvelope(msg), ""); err != nil {
		g.logger.Error("Gateway", "Failed to broadcast message", map[string]interface{}{"room_id": roomId, "error": err.Error()})
	}
}

// handleTyping relays the indicator to everyone but the sender. Best-effort:
// nothing is persisted and no delivery is guaranteed.
func (g *Gateway) handleTyping(client *Client, roomId uuid.UUID, isTyping bool) {
	if !g.isJoined(client, roomId) {
		return
	}

	env := Envelope{Type: EventUserTyping, Data: UserTypingPayload{
		DisplayName: client.DisplayName,
		IsTyping:    isTyping,
	}}
	if err := g.hub.BroadcastToRoom(roomId, env, client.Id); err != nil {
		g.logger.Warn("Gateway", "Failed to relay typing indicator", map[string]interface{}{"room_id": roomId, "error": err.Error()})
	}
}

func (g *Gateway) handleDeleteMessage(client *Client, roomId uuid.UUID, messageId int64) {
	if !g.isJoined(client, roomId) {
		client.SendEvent(errorEnvelope("VALIDATION_ERROR", "join the room before deleting messages", false))
		return
	}

	caller := &serverutils.Caller{UserId: client.UserId, DisplayName: client.DisplayName, Role: client.Role}
	if err := g.chat.DeleteMessage(context.Background(), roomId, caller, messageId); err != nil {
		g.sendError(client, err)
		return
	}

	env := Envelope{Type: EventMessageDeleted, Data: MessageDeletedPayload{MessageId: messageId}}
	if err := g.hub.BroadcastToRoom(roomId, env, ""); err != nil {
		g.logger.Error("Gateway", "Failed to broadcast deletion", map[string]interface{}{"room_id": roomId, "error": err.Error()})
	}
}

func (g *Gateway) isJoined(client *Client, roomId uuid.UUID) bool {
	current := client.Room()
	return current != nil && *current == roomId
}

func (g *Gateway) roomLock(roomId uuid.UUID) *sync.Mutex {
	lock, _ := g.roomLocks.LoadOrStore(roomId, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// sendError maps a service error onto an error event for the initiator only.
func (g *Gateway) sendError(client *Client, err error) {
	if appErr, ok := serverutils.AsAppError(err); ok {
		client.SendEvent(errorEnvelope(appErr.Code, appErr.Message, appErr.Retryable))
		return
	}
	client.SendEvent(errorEnvelope("INTERNAL_ERROR", "something went wrong", false))
}
