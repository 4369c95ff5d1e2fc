package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"liveshop-chat-be/internal/dto"
	"liveshop-chat-be/internal/entity"
	"liveshop-chat-be/internal/pkg/serverutils"
	"liveshop-chat-be/internal/repository/memory"
	"liveshop-chat-be/internal/service"
	"liveshop-chat-be/pkg/moderation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRooms struct {
	rooms map[uuid.UUID]*entity.LiveRoom
}

func (s *fixedRooms) RoomInfo(_ context.Context, roomId uuid.UUID) (*entity.LiveRoom, error) {
	if room, ok := s.rooms[roomId]; ok {
		return room, nil
	}
	return nil, serverutils.NewNotFoundError("room not found")
}

type gatewayFixture struct {
	hub     *Hub
	gateway *Gateway
	chat    service.IChatService
	liveId  uuid.UUID
	endedId uuid.UUID
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()

	liveId := uuid.New()
	endedId := uuid.New()
	rooms := &fixedRooms{rooms: map[uuid.UUID]*entity.LiveRoom{
		liveId:  {Id: liveId, OwnerId: uuid.New(), Title: "Live", IsLive: true},
		endedId: {Id: endedId, OwnerId: uuid.New(), Title: "Ended", IsLive: false},
	}}

	chat := service.NewChatService(
		memory.NewChatMessageRepository(),
		rooms,
		moderation.NewMasker(nil, "****"),
		nil,
		testLogger{},
		50,
		100,
	)

	hub := NewHub(nil, testLogger{})
	go hub.Run()

	return &gatewayFixture{
		hub:     hub,
		gateway: NewGateway(hub, chat, rooms, testLogger{}),
		chat:    chat,
		liveId:  liveId,
		endedId: endedId,
	}
}

// joinedClient registers a fresh connection and joins it to the room through
// the gateway, draining its own join announcements.
func (f *gatewayFixture) joinedClient(t *testing.T, displayName string) *Client {
	t.Helper()
	c := newTestClient(f.hub, displayName)
	register(t, f.hub, c)
	f.gateway.HandleEvent(c, inbound(t, EventJoin, f.liveId, "", 0))
	recvUntil(t, c, EventViewerCount)
	return c
}

func inbound(t *testing.T, eventType string, roomId uuid.UUID, body string, messageId int64) []byte {
	t.Helper()
	data, err := json.Marshal(InboundEvent{Type: eventType, RoomId: roomId, Body: body, MessageId: messageId})
	require.NoError(t, err)
	return data
}

func recvError(t *testing.T, c *Client) ErrorPayload {
	t.Helper()
	f := recvUntil(t, c, EventError)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(f.Data, &payload))
	return payload
}

func TestHandleEventRejectsMalformedFrames(t *testing.T) {
	f := newGatewayFixture(t)
	c := newTestClient(f.hub, "viewer")
	register(t, f.hub, c)

	f.gateway.HandleEvent(c, []byte("not json"))
	assert.Equal(t, "VALIDATION_ERROR", recvError(t, c).Code)

	f.gateway.HandleEvent(c, inbound(t, "no-such-event", f.liveId, "", 0))
	assert.Equal(t, "VALIDATION_ERROR", recvError(t, c).Code)
}

func TestJoinEndedRoomRejected(t *testing.T) {
	f := newGatewayFixture(t)
	c := newTestClient(f.hub, "viewer")
	register(t, f.hub, c)

	f.gateway.HandleEvent(c, inbound(t, EventJoin, f.endedId, "", 0))
	assert.Equal(t, "ROOM_NOT_LIVE", recvError(t, c).Code)
	assert.Equal(t, 0, f.hub.ViewerCount(f.endedId))
}

func TestJoinUnknownRoomRejected(t *testing.T) {
	f := newGatewayFixture(t)
	c := newTestClient(f.hub, "viewer")
	register(t, f.hub, c)

	f.gateway.HandleEvent(c, inbound(t, EventJoin, uuid.New(), "", 0))
	assert.Equal(t, "NOT_FOUND", recvError(t, c).Code)
}

func TestSendMessageRequiresJoin(t *testing.T) {
	f := newGatewayFixture(t)
	c := newTestClient(f.hub, "lurker")
	register(t, f.hub, c)

	f.gateway.HandleEvent(c, inbound(t, EventSendMessage, f.liveId, "hi", 0))
	assert.Equal(t, "VALIDATION_ERROR", recvError(t, c).Code)

	page, err := f.chat.ListMessages(context.Background(), f.liveId, 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Messages, "nothing may be persisted before join")
}

func TestSendMessageBroadcastsToRoomIncludingSender(t *testing.T) {
	f := newGatewayFixture(t)
	sender := f.joinedClient(t, "sender")
	other := f.joinedClient(t, "other")
	recvUntil(t, sender, EventUserJoined) // other's join

	f.gateway.HandleEvent(sender, inbound(t, EventSendMessage, f.liveId, "hello room", 0))

	for _, c := range []*Client{sender, other} {
		frame := recvUntil(t, c, EventNewMessage)
		var msg dto.ChatMessageResponse
		require.NoError(t, json.Unmarshal(frame.Data, &msg))
		assert.Equal(t, "hello room", msg.Body)
		assert.Equal(t, "sender", msg.Author.DisplayName)
		assert.Positive(t, msg.Id)
	}
}

func TestSendMessageIdsArriveInOrder(t *testing.T) {
	f := newGatewayFixture(t)
	sender := f.joinedClient(t, "sender")

	for i := 0; i < 10; i++ {
		f.gateway.HandleEvent(sender, inbound(t, EventSendMessage, f.liveId, fmt.Sprintf("msg %d", i), 0))
	}

	var last int64
	for i := 0; i < 10; i++ {
		frame := recvUntil(t, sender, EventNewMessage)
		var msg dto.ChatMessageResponse
		require.NoError(t, json.Unmarshal(frame.Data, &msg))
		require.Greater(t, msg.Id, last, "new-message frames must arrive in store order")
		last = msg.Id
	}
}

func TestInvalidBodyErrorsOnlyToSender(t *testing.T) {
	f := newGatewayFixture(t)
	sender := f.joinedClient(t, "sender")
	other := f.joinedClient(t, "other")
	recvUntil(t, sender, EventUserJoined)

	f.gateway.HandleEvent(sender, inbound(t, EventSendMessage, f.liveId, "   ", 0))
	assert.Equal(t, "VALIDATION_ERROR", recvError(t, sender).Code)

	assert.Empty(t, other.Send, "bystanders must not see the failure")
}

func TestTypingRelayExcludesSender(t *testing.T) {
	f := newGatewayFixture(t)
	typer := f.joinedClient(t, "typer")
	watcher := f.joinedClient(t, "watcher")
	recvUntil(t, typer, EventUserJoined)

	f.gateway.HandleEvent(typer, inbound(t, EventTypingStart, f.liveId, "", 0))

	frame := recvUntil(t, watcher, EventUserTyping)
	var payload UserTypingPayload
	require.NoError(t, json.Unmarshal(frame.Data, &payload))
	assert.Equal(t, "typer", payload.DisplayName)
	assert.True(t, payload.IsTyping)

	assert.Empty(t, typer.Send, "sender must not receive its own typing relay")
}

func TestDeleteMessageBroadcasts(t *testing.T) {
	f := newGatewayFixture(t)
	author := f.joinedClient(t, "author")
	other := f.joinedClient(t, "other")
	recvUntil(t, author, EventUserJoined)

	f.gateway.HandleEvent(author, inbound(t, EventSendMessage, f.liveId, "oops", 0))
	frame := recvUntil(t, author, EventNewMessage)
	var msg dto.ChatMessageResponse
	require.NoError(t, json.Unmarshal(frame.Data, &msg))
	recvUntil(t, other, EventNewMessage)

	f.gateway.HandleEvent(author, inbound(t, EventDeleteMessage, f.liveId, "", msg.Id))

	for _, c := range []*Client{author, other} {
		deleted := recvUntil(t, c, EventMessageDeleted)
		var payload MessageDeletedPayload
		require.NoError(t, json.Unmarshal(deleted.Data, &payload))
		assert.Equal(t, msg.Id, payload.MessageId)
	}

	page, err := f.chat.ListMessages(context.Background(), f.liveId, 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Messages)
}

func TestDeleteMessageForbiddenKeepsMessage(t *testing.T) {
	f := newGatewayFixture(t)
	author := f.joinedClient(t, "author")
	intruder := f.joinedClient(t, "intruder")
	recvUntil(t, author, EventUserJoined)

	f.gateway.HandleEvent(author, inbound(t, EventSendMessage, f.liveId, "mine", 0))
	frame := recvUntil(t, author, EventNewMessage)
	var msg dto.ChatMessageResponse
	require.NoError(t, json.Unmarshal(frame.Data, &msg))
	recvUntil(t, intruder, EventNewMessage)

	f.gateway.HandleEvent(intruder, inbound(t, EventDeleteMessage, f.liveId, "", msg.Id))
	assert.Equal(t, "FORBIDDEN", recvError(t, intruder).Code)

	page, err := f.chat.ListMessages(context.Background(), f.liveId, 0, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Messages, 1)
	assert.Equal(t, "mine", page.Messages[0].Body)

	assert.Empty(t, author.Send, "the author must not see the failed attempt")
}

func TestLeaveViaGateway(t *testing.T) {
	f := newGatewayFixture(t)
	c := f.joinedClient(t, "visitor")
	require.Equal(t, 1, f.hub.ViewerCount(f.liveId))

	f.gateway.HandleEvent(c, inbound(t, EventLeave, f.liveId, "", 0))
	assert.Equal(t, 0, f.hub.ViewerCount(f.liveId))
}
