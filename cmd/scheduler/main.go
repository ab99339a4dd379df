package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty_portal_backend/internal/adapters"
	agentrepo "realty_portal_backend/internal/agents/repository"
	agentservice "realty_portal_backend/internal/agents/service"
	"realty_portal_backend/internal/email"
	requestrepo "realty_portal_backend/internal/requests/repository"
	requestservice "realty_portal_backend/internal/requests/service"
	"realty_portal_backend/internal/scheduler"
	unitrepo "realty_portal_backend/internal/units/repository"
	unitservice "realty_portal_backend/internal/units/service"
	"realty_portal_backend/platform/config"
	"realty_portal_backend/platform/db"
	"realty_portal_backend/platform/events"
	"realty_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The scheduler binary runs the asynq worker that delivers deferred
// tasks such as visit reminder emails. It shares the service layer with
// the API binary but registers no HTTP routes.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler worker", "env", cfg.Env)

	if cfg.GetRedisURL() == "" {
		log.Error("REDIS_URL not configured; scheduler worker cannot start")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	if !cfg.IsEmailConfigured() {
		log.Warn("email provider not configured; reminder emails will be skipped")
	}

	eventBus := events.NewInMemoryBus(log)

	agents := agentservice.New(agentrepo.New(pool))
	units := unitservice.New(unitrepo.New(pool))

	// The worker only consumes tasks, so it never schedules new ones.
	requests := requestservice.New(
		requestrepo.New(pool),
		adapters.NewAgentsProvider(agents),
		adapters.NewUnitsLocker(units),
		sender,
		eventBus,
		nil,
		log,
	)

	worker, err := scheduler.NewWorker(cfg, requests, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	log.Info("scheduler worker listening", "queue", cfg.GetAsynqQueueName())
	worker.Run(ctx)
	log.Info("scheduler worker stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
