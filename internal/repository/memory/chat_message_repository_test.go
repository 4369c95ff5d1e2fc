package memory

import (
	"context"
	"testing"

	"liveshop-chat-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendMessage(t *testing.T, repo *ChatMessageRepository, roomId uuid.UUID, body string) *entity.ChatMessage {
	t.Helper()
	msg := &entity.ChatMessage{
		RoomId:     roomId,
		AuthorId:   uuid.New(),
		AuthorName: "tester",
		AuthorRole: entity.RoleCustomer,
		Body:       body,
	}
	require.NoError(t, repo.Append(context.Background(), msg))
	return msg
}

func TestAppendAssignsIncreasingIds(t *testing.T) {
	repo := NewChatMessageRepository()
	roomId := uuid.New()

	var lastId int64
	for i := 0; i < 5; i++ {
		msg := appendMessage(t, repo, roomId, "hello")
		assert.Greater(t, msg.Id, lastId, "ids must be strictly increasing")
		assert.False(t, msg.CreatedAt.IsZero(), "append must stamp CreatedAt")
		lastId = msg.Id
	}
}

func TestListSinceReturnsOnlyNewerMessages(t *testing.T) {
	repo := NewChatMessageRepository()
	roomId := uuid.New()

	first := appendMessage(t, repo, roomId, "first")
	second := appendMessage(t, repo, roomId, "second")
	third := appendMessage(t, repo, roomId, "third")

	got, err := repo.ListSince(context.Background(), roomId, first.Id, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.Id, got[0].Id)
	assert.Equal(t, third.Id, got[1].Id)
}

func TestListSinceIsScopedToRoom(t *testing.T) {
	repo := NewChatMessageRepository()
	roomA := uuid.New()
	roomB := uuid.New()

	appendMessage(t, repo, roomA, "for A")
	forB := appendMessage(t, repo, roomB, "for B")

	got, err := repo.ListSince(context.Background(), roomB, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, forB.Id, got[0].Id)
}

func TestListBeforeReturnsNewestFirst(t *testing.T) {
	repo := NewChatMessageRepository()
	roomId := uuid.New()

	for i := 0; i < 5; i++ {
		appendMessage(t, repo, roomId, "msg")
	}

	got, err := repo.ListBefore(context.Background(), roomId, 0, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Greater(t, got[0].Id, got[1].Id)
	assert.Greater(t, got[1].Id, got[2].Id)
}

func TestListBeforeCursor(t *testing.T) {
	repo := NewChatMessageRepository()
	roomId := uuid.New()

	first := appendMessage(t, repo, roomId, "first")
	second := appendMessage(t, repo, roomId, "second")
	appendMessage(t, repo, roomId, "third")

	got, err := repo.ListBefore(context.Background(), roomId, second.Id, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first.Id, got[0].Id)
}

func TestSoftDeleteHidesMessageFromReads(t *testing.T) {
	repo := NewChatMessageRepository()
	roomId := uuid.New()

	msg := appendMessage(t, repo, roomId, "to delete")
	appendMessage(t, repo, roomId, "stays")

	deleted, err := repo.SoftDelete(context.Background(), msg.Id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.True(t, deleted.IsDeleted)

	since, err := repo.ListSince(context.Background(), roomId, 0, 10)
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, "stays", since[0].Body)

	before, err := repo.ListBefore(context.Background(), roomId, 0, 10)
	require.NoError(t, err)
	require.Len(t, before, 1)
}

func TestSoftDeleteIsIdempotent(t *testing.T) {
	repo := NewChatMessageRepository()
	msg := appendMessage(t, repo, uuid.New(), "bye")

	_, err := repo.SoftDelete(context.Background(), msg.Id)
	require.NoError(t, err)

	again, err := repo.SoftDelete(context.Background(), msg.Id)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.True(t, again.IsDeleted)
}

func TestFindByIdMissingReturnsNil(t *testing.T) {
	repo := NewChatMessageRepository()

	got, err := repo.FindById(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, got)

	deleted, err := repo.SoftDelete(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestFindByIdReturnsDeletedMessages(t *testing.T) {
	// Moderation needs to inspect deleted rows even though reads hide them.
	repo := NewChatMessageRepository()
	msg := appendMessage(t, repo, uuid.New(), "gone")

	_, err := repo.SoftDelete(context.Background(), msg.Id)
	require.NoError(t, err)

	got, err := repo.FindById(context.Background(), msg.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsDeleted)
}
