package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/shared/config"
	"tickettracker/internal/shared/logger"
)

// Envelope is the message written to the Redis channel for every event.
type Envelope struct {
	InstanceID string          `json:"instance_id"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
}

// RedisTicketEventPublisher forwards domain events to a Redis channel so
// other processes can react to ticket changes.
type RedisTicketEventPublisher struct {
	client     redis.UniversalClient
	channel    string
	instanceID string
	logger     logger.Interface
}

func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisTicketEventPublisher(client redis.UniversalClient, channel string, log logger.Interface) *RedisTicketEventPublisher {
	return &RedisTicketEventPublisher{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// Handle implements events.EventHandler.
func (p *RedisTicketEventPublisher) Handle(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.GetEventType(), err)
	}
	data, err := json.Marshal(Envelope{
		InstanceID: p.instanceID,
		EventType:  event.GetEventType(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event envelope: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Errorw("failed to publish ticket event",
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}

	p.logger.Debugw("ticket event published to Redis",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

func (p *RedisTicketEventPublisher) CanHandle(string) bool {
	return true
}

// Subscribe delivers envelopes from the channel to handler until ctx ends.
func Subscribe(ctx context.Context, client redis.UniversalClient, channel string, handler func(Envelope)) error {
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				continue
			}
			handler(env)
		}
	}
}
