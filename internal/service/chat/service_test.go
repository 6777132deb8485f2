package chat

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/internal/service/notification"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	"github.com/altynbek8/ServiceApp/pkg/messaging"
	redisbroker "github.com/altynbek8/ServiceApp/pkg/messaging/redis"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("serviceapp", "chat_test")

type fakeMessageRepo struct {
	messages map[uuid.UUID]*model.Message
	category []*model.CategoryMessage
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[uuid.UUID]*model.Message)}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if _, ok := f.messages[m.ID]; ok {
		return repository.ErrDuplicate
	}
	m.CreatedAt = time.Now()
	copied := *m
	f.messages[m.ID] = &copied
	return nil
}

func (f *fakeMessageRepo) ListBetween(_ context.Context, a, b uuid.UUID, _ int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, receiverID, senderID uuid.UUID) error {
	for _, m := range f.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessageRepo) ListConversations(context.Context, uuid.UUID) ([]*model.Conversation, error) {
	return nil, nil
}

func (f *fakeMessageRepo) CreateCategoryMessage(_ context.Context, m *model.CategoryMessage) error {
	m.ID = int64(len(f.category) + 1)
	m.CreatedAt = time.Now()
	copied := *m
	f.category = append(f.category, &copied)
	return nil
}

func (f *fakeMessageRepo) ListCategoryMessages(_ context.Context, categoryID int64, _ int) ([]*model.CategoryMessage, error) {
	var out []*model.CategoryMessage
	for _, m := range f.category {
		if m.CategoryID == categoryID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

type nullNotificationRepo struct{}

func (nullNotificationRepo) Create(context.Context, *model.Notification) error { return nil }
func (nullNotificationRepo) ListByUser(context.Context, uuid.UUID, int) ([]*model.Notification, error) {
	return nil, nil
}
func (nullNotificationRepo) MarkRead(context.Context, uuid.UUID, []uuid.UUID) error { return nil }

type nullProfileRepo struct{}

func (nullProfileRepo) Create(context.Context, *model.Profile) error { return nil }
func (nullProfileRepo) Get(context.Context, uuid.UUID) (*model.Profile, error) {
	return nil, repository.ErrNotFound
}
func (nullProfileRepo) GetByEmail(context.Context, string) (*model.Profile, error) {
	return nil, repository.ErrNotFound
}
func (nullProfileRepo) Update(context.Context, *model.Profile) error                { return nil }
func (nullProfileRepo) UpdateRole(context.Context, uuid.UUID, model.UserRole) error { return nil }
func (nullProfileRepo) UpdatePushToken(context.Context, uuid.UUID, string) error    { return nil }
func (nullProfileRepo) SetBanned(context.Context, uuid.UUID, bool) error            { return nil }
func (nullProfileRepo) Delete(context.Context, uuid.UUID) error                     { return nil }
func (nullProfileRepo) List(context.Context, *model.ProfileFilters) ([]*model.Profile, error) {
	return nil, nil
}

type nullOutboxRepo struct{}

func (nullOutboxRepo) Create(context.Context, *model.OutboxEvent) error { return nil }
func (nullOutboxRepo) GetPendingEventsWithLock(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (nullOutboxRepo) UpdateStatus(context.Context, uuid.UUID, model.OutboxStatus, *string) error {
	return nil
}

func newTestBroker(t *testing.T) messaging.Broker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisbroker.NewRedisBrokerWithClient(client, nil)
}

func newChatService(t *testing.T, broker messaging.Broker) (*Service, *fakeMessageRepo) {
	t.Helper()
	repo := newFakeMessageRepo()
	quiet := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	notifSvc := notification.NewService(nullNotificationRepo{}, nullProfileRepo{}, nullOutboxRepo{}, quiet)
	return NewService(repo, broker, notifSvc, quiet, testMetrics), repo
}

func receiveEvent(t *testing.T, ch <-chan []byte) *model.ChatEvent {
	t.Helper()
	select {
	case raw := <-ch:
		var event model.ChatEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		return &event
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for chat event")
		return nil
	}
}

func TestSendDeliversToBothParticipants(t *testing.T) {
	broker := newTestBroker(t)
	svc, _ := newChatService(t, broker)

	senderID, receiverID := uuid.New(), uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	receiverStream, err := svc.Subscribe(ctx, receiverID)
	require.NoError(t, err)
	senderStream, err := svc.Subscribe(ctx, senderID)
	require.NoError(t, err)

	m, err := svc.Send(context.Background(), senderID, receiverID, &model.SendMessageRequest{
		Content: "Здравствуйте! Свободно ли время завтра в 10:00?",
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, m.ID)

	for _, stream := range []<-chan []byte{receiverStream, senderStream} {
		event := receiveEvent(t, stream)
		assert.Equal(t, model.ChatEventMessage, event.Type)
		require.NotNil(t, event.Message)
		assert.Equal(t, m.ID, event.Message.ID)
		assert.Equal(t, m.Content, event.Message.Content)
	}
}

func TestSendRejectsSelf(t *testing.T) {
	svc, _ := newChatService(t, newTestBroker(t))
	id := uuid.New()

	_, err := svc.Send(context.Background(), id, id, &model.SendMessageRequest{Content: "hi"})
	assert.Error(t, err)
}

func TestSendReplayedIDIsAcknowledgedOnce(t *testing.T) {
	broker := newTestBroker(t)
	svc, repo := newChatService(t, broker)

	senderID, receiverID := uuid.New(), uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := svc.Subscribe(ctx, receiverID)
	require.NoError(t, err)

	clientID := uuid.New()
	req := &model.SendMessageRequest{ID: &clientID, Content: "привет"}

	first, err := svc.Send(context.Background(), senderID, receiverID, req)
	require.NoError(t, err)
	receiveEvent(t, stream)

	// The retry is acknowledged but neither stored nor re-broadcast.
	second, err := svc.Send(context.Background(), senderID, receiverID, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.messages, 1)

	select {
	case raw := <-stream:
		t.Fatalf("unexpected re-broadcast: %s", raw)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHistoryMarksThreadRead(t *testing.T) {
	svc, repo := newChatService(t, newTestBroker(t))
	senderID, receiverID := uuid.New(), uuid.New()

	m, err := svc.Send(context.Background(), senderID, receiverID, &model.SendMessageRequest{Content: "ку"})
	require.NoError(t, err)

	messages, err := svc.History(context.Background(), receiverID, senderID, 50)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, repo.messages[m.ID].IsRead)
}

func TestCategoryRoomBroadcast(t *testing.T) {
	broker := newTestBroker(t)
	svc, _ := newChatService(t, broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := svc.SubscribeCategory(ctx, 7)
	require.NoError(t, err)

	senderID := uuid.New()
	m, err := svc.SendCategory(context.Background(), senderID, 7, "Кто делает балаяж в Астане?")
	require.NoError(t, err)
	assert.NotZero(t, m.ID)

	event := receiveEvent(t, stream)
	assert.Equal(t, model.ChatEventCategoryMessage, event.Type)
	require.NotNil(t, event.CategoryMessage)
	assert.Equal(t, int64(7), event.CategoryMessage.CategoryID)

	history, err := svc.CategoryHistory(context.Background(), 7, 50)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestChannelNames(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "chat:user:6ba7b810-9dad-11d1-80b4-00c04fd430c8", UserChannel(id))
	assert.Equal(t, "chat:category:42", CategoryChannel(42))
}
