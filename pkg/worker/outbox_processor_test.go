package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	"github.com/altynbek8/ServiceApp/pkg/messaging"
	redisbroker "github.com/altynbek8/ServiceApp/pkg/messaging/redis"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("serviceapp", "worker_test")

type statusUpdate struct {
	id     uuid.UUID
	status model.OutboxStatus
	errMsg *string
}

type fakeOutboxRepo struct {
	pending []*model.OutboxEvent
	updates []statusUpdate
}

func (f *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	f.pending = append(f.pending, e)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEventsWithLock(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	f.updates = append(f.updates, statusUpdate{id: id, status: status, errMsg: errMsg})
	return nil
}

type failingBroker struct {
	calls int
}

func (b *failingBroker) Publish(context.Context, string, interface{}) error {
	b.calls++
	return errors.New("broker unavailable")
}

func (b *failingBroker) Subscribe(context.Context, string) (<-chan []byte, error) {
	return nil, errors.New("broker unavailable")
}

func (b *failingBroker) Close() error { return nil }

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func pushEvent(t *testing.T) *model.OutboxEvent {
	t.Helper()
	payload, err := json.Marshal(model.PushPayload{
		RecipientID: uuid.New(),
		Title:       "Новая заявка",
		Body:        "Новая заявка на 2026-03-15 в 10:00",
	})
	require.NoError(t, err)
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: model.EventTypePush,
		Payload:   payload,
		Status:    string(model.OutboxStatusPending),
	}
}

func TestProcessEventsPublishesAndMarksProcessed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	broker := redisbroker.NewRedisBrokerWithClient(client, nil)

	event := pushEvent(t)
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{event}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream, err := broker.Subscribe(ctx, model.EventTypePush)
	require.NoError(t, err)

	p := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		RetryDelay: time.Millisecond,
	}, quietLogger(), testMetrics)
	require.NoError(t, p.processEvents(context.Background()))

	select {
	case raw := <-stream:
		// The payload goes over the wire as stored, not double-encoded.
		var got model.PushPayload
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "Новая заявка", got.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}

	require.Len(t, repo.updates, 1)
	assert.Equal(t, event.ID, repo.updates[0].id)
	assert.Equal(t, model.OutboxStatusProcessed, repo.updates[0].status)
	assert.Nil(t, repo.updates[0].errMsg)
}

func TestProcessEventsMarksFailedAfterRetries(t *testing.T) {
	event := pushEvent(t)
	repo := &fakeOutboxRepo{pending: []*model.OutboxEvent{event}}
	broker := &failingBroker{}

	p := NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}, quietLogger(), testMetrics)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, 2, broker.calls)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, model.OutboxStatusFailed, repo.updates[0].status)
	require.NotNil(t, repo.updates[0].errMsg)
	assert.Contains(t, *repo.updates[0].errMsg, "broker unavailable")
}

func TestProcessorStopsWithContext(t *testing.T) {
	repo := &fakeOutboxRepo{}
	p := NewOutboxProcessor(repo, &failingBroker{}, OutboxProcessorConfig{
		PollInterval: 10 * time.Millisecond,
		RetryDelay:   time.Millisecond,
	}, quietLogger(), testMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("processor did not stop after context cancellation")
	}
}

var _ messaging.Broker = (*failingBroker)(nil)
