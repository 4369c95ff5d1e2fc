package events

import (
	"time"

	"github.com/google/uuid"
)

// Chat events feed the back-office subsystems (partner dashboards, admin
// statistics) that track chat activity without holding a websocket open.

func NewMessageCreated(messageId int64, roomId, authorId uuid.UUID, authorRole string) Event {
	return BaseEvent{
		Type: "CHAT_MESSAGE_CREATED",
		Data: map[string]interface{}{
			"message_id":  messageId,
			"room_id":     roomId.String(),
			"author_id":   authorId.String(),
			"author_role": authorRole,
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageDeleted(messageId int64, roomId, deletedBy uuid.UUID) Event {
	return BaseEvent{
		Type: "CHAT_MESSAGE_DELETED",
		Data: map[string]interface{}{
			"message_id": messageId,
			"room_id":    roomId.String(),
			"deleted_by": deletedBy.String(),
		},
		OccurredAt: time.Now(),
	}
}
