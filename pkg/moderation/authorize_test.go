package moderation

import (
	"testing"

	"liveshop-chat-be/internal/entity"

	"github.com/google/uuid"
)

func TestCanDelete(t *testing.T) {
	author := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()
	admin := uuid.New()

	tests := []struct {
		name        string
		requesterId uuid.UUID
		role        string
		want        bool
	}{
		{name: "author deletes own message", requesterId: author, role: entity.RoleCustomer, want: true},
		{name: "admin deletes anything", requesterId: admin, role: entity.RoleAdmin, want: true},
		{name: "room owner partner", requesterId: owner, role: entity.RolePartner, want: true},
		{name: "partner of another room", requesterId: stranger, role: entity.RolePartner, want: false},
		{name: "unrelated customer", requesterId: stranger, role: entity.RoleCustomer, want: false},
		{name: "owner id without partner role", requesterId: owner, role: entity.RoleCustomer, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanDelete(tt.requesterId, tt.role, author, owner); got != tt.want {
				t.Errorf("CanDelete() = %v, want %v", got, tt.want)
			}
		})
	}
}
