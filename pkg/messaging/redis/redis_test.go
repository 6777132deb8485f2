package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/pkg/messaging"
)

func newBroker(t *testing.T) messaging.Broker {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBrokerWithClient(client, nil)
}

func TestPublishSubscribeRoundTrip(t *testing.T) {
	broker := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := broker.Subscribe(ctx, "events")
	require.NoError(t, err)

	payload := map[string]string{"kind": "ping", "note": "hello"}
	require.NoError(t, broker.Publish(context.Background(), "events", payload))

	select {
	case raw := <-ch:
		var got map[string]string
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, payload, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestSubscribeIsChannelScoped(t *testing.T) {
	broker := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := broker.Subscribe(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, broker.Publish(context.Background(), "b", "other"))

	select {
	case raw := <-ch:
		t.Fatalf("received message from foreign channel: %s", raw)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSubscribeEndsWithContext(t *testing.T) {
	broker := newBroker(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := broker.Subscribe(ctx, "events")
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}

func TestPublishRejectsUnmarshalable(t *testing.T) {
	broker := newBroker(t)
	err := broker.Publish(context.Background(), "events", make(chan int))
	assert.Error(t, err)
}
