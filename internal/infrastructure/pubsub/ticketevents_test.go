package pubsub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/shared/logger"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisTicketEventPublisher_Handle(t *testing.T) {
	client := setupTestRedis(t)
	channel := "tickettracker:test:" + time.Now().Format("150405.000000")
	pub := NewRedisTicketEventPublisher(client, channel, logger.NewLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	received := make(chan Envelope, 1)
	ready := make(chan struct{})
	go func() {
		sub := client.Subscribe(ctx, channel)
		defer sub.Close()
		_, _ = sub.Receive(ctx)
		close(ready)
		msg, err := sub.ReceiveMessage(ctx)
		if err != nil {
			return
		}
		var env Envelope
		if json.Unmarshal([]byte(msg.Payload), &env) == nil {
			received <- env
		}
	}()
	<-ready

	require.NoError(t, pub.Handle(ctx, events.NewBaseEvent("12", "ticket.closed", time.Now())))

	select {
	case env := <-received:
		assert.Equal(t, "ticket.closed", env.EventType)
		assert.Equal(t, pub.instanceID, env.InstanceID)
		assert.Contains(t, string(env.Payload), `"aggregate_id":"12"`)
	case <-ctx.Done():
		t.Fatal("event not received")
	}
}

func TestRedisTicketEventPublisher_HandleReportsFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	pub := NewRedisTicketEventPublisher(client, "x", logger.NewLogger())

	err := pub.Handle(context.Background(), events.NewBaseEvent("1", "ticket.created", time.Now()))

	assert.Error(t, err)
	assert.True(t, pub.CanHandle("anything"))
}
