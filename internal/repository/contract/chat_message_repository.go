package contract

import (
	"context"

	"liveshop-chat-be/internal/entity"

	"github.com/google/uuid"
)

// ChatMessageRepository is the durable, ordered message log. Append relies on
// the store's own sequence for the ordering position, so concurrent appends to
// the same room never collide. List operations exclude soft-deleted rows;
// FindById does not, so delete stays idempotent.
type ChatMessageRepository interface {
	Append(ctx context.Context, message *entity.ChatMessage) error
	FindById(ctx context.Context, id int64) (*entity.ChatMessage, error)
	ListSince(ctx context.Context, roomId uuid.UUID, afterId int64, limit int) ([]*entity.ChatMessage, error)
	ListBefore(ctx context.Context, roomId uuid.UUID, beforeId int64, limit int) ([]*entity.ChatMessage, error)
	SoftDelete(ctx context.Context, id int64) (*entity.ChatMessage, error)
}
