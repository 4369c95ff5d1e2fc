package memory

import (
	"context"
	"sync"
	"time"

	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/repository/contract"

	"github.com/google/uuid"
)

// ChatMessageRepository is an in-memory message log with the same contract as
// the Postgres implementation. It backs the unit test suites so they run
// without a database; the sequence counter mirrors BIGSERIAL assignment.
type ChatMessageRepository struct {
	mu       sync.Mutex
	nextId   int64
	messages []*entity.ChatMessage
}

func NewChatMessageRepository() *ChatMessageRepository {
	return &ChatMessageRepository{nextId: 1}
}

func (r *ChatMessageRepository) Append(_ context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message.Id = r.nextId
	r.nextId++
	message.CreatedAt = time.Now()

	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *ChatMessageRepository) FindById(_ context.Context, id int64) (*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.messages {
		if m.Id == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *ChatMessageRepository) ListSince(_ context.Context, roomId uuid.UUID, afterId int64, limit int) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if m.RoomId != roomId || m.IsDeleted || m.Id <= afterId {
			continue
		}
		copied := *m
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ChatMessageRepository) ListBefore(_ context.Context, roomId uuid.UUID, beforeId int64, limit int) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ChatMessage
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if m.RoomId != roomId || m.IsDeleted {
			continue
		}
		if beforeId > 0 && m.Id >= beforeId {
			continue
		}
		copied := *m
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ChatMessageRepository) SoftDelete(_ context.Context, id int64) (*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.messages {
		if m.Id == id {
			m.IsDeleted = true
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

var _ contract.ChatMessageRepository = (*ChatMessageRepository)(nil)
