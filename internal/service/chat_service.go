package service

import (
	"context"

	"liveshop-chat-be/internal/dto"
	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/pkg/logger"
	"liveshop-chat-be/internal/pkg/serverutils"
	"liveshop-chat-be/internal/repository/contract"
	"liveshop-chat-be/pkg/events"
	"liveshop-chat-be/pkg/moderation"

	"github.com/google/uuid"
)

// EventPublisher pushes chat events onto the platform bus. Typically the NATS
// JetStream publisher; nil disables publishing.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IChatService interface {
	PostMessage(ctx context.Context, roomId uuid.UUID, caller *serverutils.Caller, rawBody string) (*dto.ChatMessageResponse, error)
	ListMessages(ctx context.Context, roomId uuid.UUID, afterId, beforeId int64, limit int) (*dto.ListMessagesResponse, error)
	DeleteMessage(ctx context.Context, roomId uuid.UUID, caller *serverutils.Caller, messageId int64) error
}

type chatService struct {
	repo      contract.ChatMessageRepository
	rooms     IRoomService
	masker    *moderation.Masker
	publisher EventPublisher
	logger    logger.ILogger

	defaultPageSize int
	maxPageSize     int
}

func NewChatService(
	repo contract.ChatMessageRepository,
	rooms IRoomService,
	masker *moderation.Masker,
	publisher EventPublisher,
	log logger.ILogger,
	defaultPageSize, maxPageSize int,
) IChatService {
	return &chatService{
		repo:            repo,
		rooms:           rooms,
		masker:          masker,
		publisher:       publisher,
		logger:          log,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// PostMessage validates and masks the body, gates on the room being live, and
// appends to the log. The broadcast to connected viewers happens in the
// gateway after this returns; the REST path stops at persistence.
func (s *chatService) PostMessage(ctx context.Context, roomId uuid.UUID, caller *serverutils.Caller, rawBody string) (*dto.ChatMessageResponse, error) {
	trimmed, err := moderation.Validate(rawBody)
	if err != nil {
		return nil, serverutils.NewValidationError(err.Error())
	}

	room, err := s.rooms.RoomInfo(ctx, roomId)
	if err != nil {
		return nil, err
	}
	if !room.IsLive {
		return nil, serverutils.NewRoomNotLiveError("room is not live")
	}

	message := &entity.ChatMessage{
		RoomId:     roomId,
		AuthorId:   caller.UserId,
		AuthorName: caller.DisplayName,
		AuthorRole: caller.Role,
		Body:       s.masker.Mask(trimmed),
	}
	if err := s.repo.Append(ctx, message); err != nil {
		s.logger.Error("ChatService", "Failed to append message", map[string]interface{}{"room_id": roomId, "error": err.Error()})
		return nil, serverutils.NewUnavailableError("message could not be saved, try again")
	}

	s.publish(ctx, events.NewMessageCreated(message.Id, roomId, caller.UserId, caller.Role))

	resp := toMessageResponse(message)
	return &resp, nil
}

func (s *chatService) ListMessages(ctx context.Context, roomId uuid.UUID, afterId, beforeId int64, limit int) (*dto.ListMessagesResponse, error) {
	if _, err := s.rooms.RoomInfo(ctx, roomId); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	var (
		messages []*entity.ChatMessage
		err      error
	)
	if afterId > 0 {
		messages, err = s.repo.ListSince(ctx, roomId, afterId, limit)
	} else {
		messages, err = s.repo.ListBefore(ctx, roomId, beforeId, limit)
		if err == nil {
			// ListBefore returns newest-first; flip to chronological for display.
			for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
				messages[i], messages[j] = messages[j], messages[i]
			}
		}
	}
	if err != nil {
		s.logger.Error("ChatService", "Failed to list messages", map[string]interface{}{"room_id": roomId, "error": err.Error()})
		return nil, serverutils.NewUnavailableError("messages could not be loaded, try again")
	}

	out := make([]dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		out[i] = toMessageResponse(m)
	}
	return &dto.ListMessagesResponse{
		Messages: out,
		HasMore:  len(messages) == limit,
	}, nil
}

// DeleteMessage soft-deletes after the authorization rule passes. Deleting an
// already-deleted message succeeds without side effects.
func (s *chatService) DeleteMessage(ctx context.Context, roomId uuid.UUID, caller *serverutils.Caller, messageId int64) error {
	message, err := s.repo.FindById(ctx, messageId)
	if err != nil {
		return serverutils.NewUnavailableError("message lookup failed, try again")
	}
	if message == nil || message.RoomId != roomId {
		return serverutils.NewNotFoundError("message not found")
	}

	room, err := s.rooms.RoomInfo(ctx, roomId)
	if err != nil {
		return err
	}
	if !room.IsLive {
		return serverutils.NewRoomNotLiveError("room is not live")
	}

	if !moderation.CanDelete(caller.UserId, caller.Role, message.AuthorId, room.OwnerId) {
		return serverutils.NewForbiddenError("not allowed to delete this message")
	}

	if _, err := s.repo.SoftDelete(ctx, messageId); err != nil {
		s.logger.Error("ChatService", "Failed to soft-delete message", map[string]interface{}{"message_id": messageId, "error": err.Error()})
		return serverutils.NewUnavailableError("message could not be deleted, try again")
	}

	s.publish(ctx, events.NewMessageDeleted(messageId, roomId, caller.UserId))
	return nil
}

func (s *chatService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("ChatService", "Failed to publish chat event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}

func toMessageResponse(m *entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Id:     m.Id,
		RoomId: m.RoomId,
		Body:   m.Body,
		Author: dto.AuthorResponse{
			UserId:      m.AuthorId,
			DisplayName: m.AuthorName,
			Role:        m.AuthorRole,
		},
		CreatedAt: m.CreatedAt,
	}
}
