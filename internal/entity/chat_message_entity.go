package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry in a room's append-only chat log. Id is assigned by
// the store's sequence and doubles as the pagination cursor; within a room, id
// order and CreatedAt order agree.
type ChatMessage struct {
	Id         int64
	RoomId     uuid.UUID
	AuthorId   uuid.UUID
	AuthorName string
	AuthorRole string
	Body       string
	IsDeleted  bool
	CreatedAt  time.Time
}
