package service

import (
	"context"
	"time"

	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/pkg/serverutils"
	"liveshop-chat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IRoomService resolves room existence, liveness and ownership for the chat
// paths. Backed by the live_streams table owned by the partner back-office.
type IRoomService interface {
	RoomInfo(ctx context.Context, roomId uuid.UUID) (*entity.LiveRoom, error)
}

type roomService struct {
	repo  contract.LiveStreamRepository
	cache *cache.Cache
}

func NewRoomService(repo contract.LiveStreamRepository, ttl time.Duration) IRoomService {
	return &roomService{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *roomService) RoomInfo(ctx context.Context, roomId uuid.UUID) (*entity.LiveRoom, error) {
	key := roomId.String()
	if cached, found := s.cache.Get(key); found {
		return cached.(*entity.LiveRoom), nil
	}

	room, err := s.repo.FindById(ctx, roomId)
	if err != nil {
		return nil, serverutils.NewUnavailableError("room lookup failed")
	}
	if room == nil {
		return nil, serverutils.NewNotFoundError("room not found")
	}

	s.cache.Set(key, room, cache.DefaultExpiration)
	return room, nil
}
