package mapper

import (
	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         msg.Id,
		RoomId:     msg.RoomId,
		AuthorId:   msg.AuthorId,
		AuthorName: msg.AuthorName,
		AuthorRole: msg.AuthorRole,
		Body:       msg.Body,
		IsDeleted:  msg.IsDeleted,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         msg.Id,
		RoomId:     msg.RoomId,
		AuthorId:   msg.AuthorId,
		AuthorName: msg.AuthorName,
		AuthorRole: msg.AuthorRole,
		Body:       msg.Body,
		IsDeleted:  msg.IsDeleted,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) StreamToEntity(s *model.LiveStream) *entity.LiveRoom {
	if s == nil {
		return nil
	}
	return &entity.LiveRoom{
		Id:      s.Id,
		OwnerId: s.PartnerId,
		Title:   s.Title,
		IsLive:  s.IsLive,
	}
}
