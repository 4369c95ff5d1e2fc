package model

import (
	"time"

	"github.com/google/uuid"
)

// LiveStream maps the live-stream table owned by the partner back-office. The
// chat service only reads it; schema/migrations live with that subsystem.
type LiveStream struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PartnerId uuid.UUID `gorm:"type:uuid;not null"`
	Title     string
	IsLive    bool
	CreatedAt time.Time
}

func (LiveStream) TableName() string {
	return "live_streams"
}
