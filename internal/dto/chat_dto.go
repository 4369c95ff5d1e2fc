package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

type AuthorResponse struct {
	UserId      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
}

type ChatMessageResponse struct {
	Id        int64          `json:"id"`
	RoomId    uuid.UUID      `json:"room_id"`
	Body      string         `json:"body"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"created_at"`
}

type ListMessagesResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	// HasMore is the "page was full" heuristic, not an exact count.
	HasMore bool `json:"has_more"`
}
