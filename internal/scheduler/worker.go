package scheduler

import (
	"context"
	"fmt"

	requestservice "realty_portal_backend/internal/requests/service"
	"realty_portal_backend/platform/config"
	"realty_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	requests *requestservice.Service
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, requests *requestservice.Service, log *logger.Logger) (*Worker, error) {
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

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		requests: requests,
		log:      log,
	}

	mux.HandleFunc(TaskVisitReminder, w.handleVisitReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleVisitReminder delivers the reminder for a visit that is still
// approved. The service skips visits that were cancelled or completed after
// the task was enqueued.
func (w *Worker) handleVisitReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseVisitReminderPayload(task)
	if err != nil {
		return err
	}

	visitID, err := uuid.Parse(payload.VisitID)
	if err != nil {
		return err
	}

	return w.requests.SendVisitReminder(ctx, visitID)
}
