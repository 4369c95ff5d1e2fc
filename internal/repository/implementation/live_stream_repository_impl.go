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

type LiveStreamRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewLiveStreamRepository(db *gorm.DB) contract.LiveStreamRepository {
	return &LiveStreamRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *LiveStreamRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.LiveRoom, error) {
	var m model.LiveStream
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StreamToEntity(&m), nil
}
