package websocket

import (
	"encoding/json"

	"liveshop-chat-be/internal/dto"

	"github.com/google/uuid"
)

// Client -> server event types.
const (
	EventJoin          = "join"
	EventLeave         = "leave"
	EventSendMessage   = "send-message"
	EventTypingStart   = "typing-start"
	EventTypingStop    = "typing-stop"
	EventDeleteMessage = "delete-message"
)

// Server -> client event types.
const (
	EventViewerCount    = "viewer-count"
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventNewMessage     = "new-message"
	EventUserTyping     = "user-typing"
	EventMessageDeleted = "message-deleted"
	EventError          = "error"
)

// InboundEvent is the single wire shape for client requests; which fields are
// read depends on Type.
type InboundEvent struct {
	Type      string    `json:"type"`
	RoomId    uuid.UUID `json:"room_id"`
	Body      string    `json:"body,omitempty"`
	MessageId int64     `json:"message_id,omitempty"`
}

// Envelope is the server -> client frame: {"type": ..., "data": {...}}.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type ViewerCountPayload struct {
	Count int `json:"count"`
}

type UserJoinedPayload struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	ViewerCount int    `json:"viewer_count"`
}

type UserLeftPayload struct {
	DisplayName string `json:"display_name"`
	ViewerCount int    `json:"viewer_count"`
}

type UserTypingPayload struct {
	DisplayName string `json:"display_name"`
	IsTyping    bool   `json:"is_typing"`
}

type MessageDeletedPayload struct {
	MessageId int64 `json:"message_id"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

func newMessageEnvelope(msg *dto.ChatMessageResponse) Envelope {
	return Envelope{Type: EventNewMessage, Data: msg}
}

func errorEnvelope(code, message string, retryable bool) Envelope {
	return Envelope{Type: EventError, Data: ErrorPayload{Code: code, Message: message, Retryable: retryable}}
}
