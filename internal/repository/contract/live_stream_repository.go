package contract

import (
	"context"

	"liveshop-chat-be/internal/entity"

	"github.com/google/uuid"
)

type LiveStreamRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.LiveRoom, error)
}
