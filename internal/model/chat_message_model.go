package model

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage rows are append-only. The BIGSERIAL primary key is the ordering
// position and pagination cursor; deletes only flip IsDeleted so moderation
// history survives.
type ChatMessage struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	RoomId     uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_room"`
	AuthorId   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorName string    `gorm:"type:varchar(100);not null"`
	AuthorRole string    `gorm:"type:varchar(20);not null"`
	Body       string    `gorm:"type:varchar(500);not null"`
	IsDeleted  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "live_chat_messages"
}
