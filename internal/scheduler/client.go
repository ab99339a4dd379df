// Package scheduler provides deferred task scheduling on asynq. The client
// enqueues visit reminders; the worker, run as its own process, delivers
// them.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"realty_portal_backend/platform/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// reminderLead is how long before the scheduled slot the reminder fires.
const reminderLead = 24 * time.Hour

type Client struct {
	client *asynq.Client
	queue  string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ScheduleVisitReminder enqueues the reminder to run a day before the slot.
// A nil client is a no-op so callers need no queue-configured check.
func (c *Client) ScheduleVisitReminder(ctx context.Context, visitID uuid.UUID, scheduledSlot time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewVisitReminderTask(VisitReminderPayload{
		VisitID:       visitID.String(),
		ScheduledSlot: scheduledSlot.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	runAt := scheduledSlot.Add(-reminderLead)
	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessAt(runAt), asynq.Queue(c.queue))
	return err
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
