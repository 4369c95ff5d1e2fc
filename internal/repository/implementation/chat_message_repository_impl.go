package implementation

import (
	"context"
	"errors"

	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/mapper"
	"liveshop-chat-be/internal/model"
	"liveshop-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Append(ctx context.Context, message *entity.ChatMessage) error {
	m := r.mapper.MessageToModel(message)
	m.Id = 0 // let the sequence assign the ordering position
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ChatMessageRepositoryImpl) FindById(ctx context.Context, id int64) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MessageToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) ListSince(ctx context.Context, roomId uuid.UUID, afterId int64, limit int) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND id > ? AND is_deleted = false", roomId, afterId).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) ListBefore(ctx context.Context, roomId uuid.UUID, beforeId int64, limit int) ([]*entity.ChatMessage, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ? AND is_deleted = false", roomId)
	if beforeId > 0 {
		query = query.Where("id < ?", beforeId)
	}

	var models []*model.ChatMessage
	err := query.
		Order("id DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.toEntities(models), nil
}

func (r *ChatMessageRepositoryImpl) SoftDelete(ctx context.Context, id int64) (*entity.ChatMessage, error) {
	var m model.ChatMessage
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// Re-deleting an already-deleted row is a success no-op.
	if !m.IsDeleted {
		if err := r.db.WithContext(ctx).
			Model(&model.ChatMessage{}).
			Where("id = ?", id).
			Update("is_deleted", true).Error; err != nil {
			return nil, err
		}
		m.IsDeleted = true
	}

	return r.mapper.MessageToEntity(&m), nil
}

func (r *ChatMessageRepositoryImpl) toEntities(models []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MessageToEntity(m)
	}
	return entities
}
