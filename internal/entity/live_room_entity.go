package entity

import "github.com/google/uuid"

// LiveRoom is the slice of the live-stream entity the chat service needs:
// existence, liveness, and the owning partner for moderation rights. The
// stream itself (video, schedule, product pins) is owned elsewhere.
type LiveRoom struct {
	Id      uuid.UUID
	OwnerId uuid.UUID
	Title   string
	IsLive  bool
}
