package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"tickettracker/internal/domain/shared/events"
	"tickettracker/internal/infrastructure/email"
	"tickettracker/internal/infrastructure/pubsub"
	"tickettracker/internal/infrastructure/ratelimit"
	"tickettracker/internal/interfaces/http/middleware"
)

// initEvents subscribes the post-commit consumers of ticket events. Metrics
// are always on; Redis fan-out and email follow their config switches.
func (c *Container) initEvents() error {
	if err := c.dispatcher.Subscribe(events.AllEvents, c.metrics); err != nil {
		return err
	}

	if c.cfg.Redis.Enabled {
		client := pubsub.NewRedisClient(&c.cfg.Redis)
		if err := client.Ping(context.Background()).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to Redis at %s: %w", c.cfg.Redis.GetAddr(), err)
		}
		c.redis = client
		publisher := pubsub.NewRedisTicketEventPublisher(client, c.cfg.Redis.Channel, c.log.Named("pubsub"))
		if err := c.dispatcher.Subscribe(events.AllEvents, publisher); err != nil {
			return err
		}
		c.log.Infow("publishing ticket events to Redis", "addr", c.cfg.Redis.GetAddr(), "channel", c.cfg.Redis.Channel)
	}

	if c.cfg.Email.Enabled {
		notifier := email.NewTicketNotifier(
			email.NewSMTPEmailService(&c.cfg.Email),
			c.repos.userRepo,
			c.cfg.Server.BaseURL,
			c.log.Named("email"),
		)
		if err := c.dispatcher.Subscribe(events.AllEvents, notifier); err != nil {
			return err
		}
		c.log.Infow("email notifications enabled", "smtp_host", c.cfg.Email.SMTPHost)
	}

	return nil
}

// newThrottle returns the per-user mutation limiter, or nil when rate
// limiting is off. It shares the Redis client opened by initEvents.
func (c *Container) newThrottle() gin.HandlerFunc {
	rl := c.cfg.RateLimit
	limits := ratelimit.Limits{
		PerMinute: rl.RequestsPerMinute,
		PerHour:   rl.RequestsPerHour,
		PerDay:    rl.RequestsPerDay,
	}
	if !rl.Enabled || !limits.Enabled() {
		return nil
	}
	if c.redis == nil {
		c.log.Warnw("rate limiting requires redis.enabled, skipping")
		return nil
	}

	c.log.Infow("ticket mutations rate limited", "per_minute", limits.PerMinute, "per_hour", limits.PerHour, "per_day", limits.PerDay)
	return middleware.UserRateLimit(ratelimit.NewSlidingWindow(c.redis, "tickettracker:ratelimit"), limits, c.log.Named("ratelimit"))
}
