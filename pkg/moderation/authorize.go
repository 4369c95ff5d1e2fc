package moderation

import (
	"liveshop-chat-be/internal/entity"

	"github.com/google/uuid"
)

// CanDelete implements the deletion rule: the author may delete their own
// message, admins may delete anything, and a partner may delete within the
// room they own.
func CanDelete(requesterId uuid.UUID, requesterRole string, authorId, roomOwnerId uuid.UUID) bool {
	if requesterId == authorId {
		return true
	}
	if requesterRole == entity.RoleAdmin {
		return true
	}
	if requesterRole == entity.RolePartner && requesterId == roomOwnerId {
		return true
	}
	return false
}
