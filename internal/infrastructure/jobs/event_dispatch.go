package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farm-bridge.backend/internal/domain/entities"
	domainRepos "farm-bridge.backend/internal/domain/repositories"
	"farm-bridge.backend/pkg/logger"
)

// EventSink receives committed ledger events, in transition order.
type EventSink interface {
	Deliver(ctx context.Context, event *entities.LedgerEvent) error
}

// EventDispatchJob drains undelivered ledger events to the registered sinks.
// Events are appended inside the committing transaction; delivery to
// external collaborators happens here, decoupled from the transition logic.
type EventDispatchJob struct {
	repo     domainRepos.LedgerEventRepository
	sinks    []EventSink
	interval time.Duration
	batch    int
	stop     chan struct{}
}

func NewEventDispatchJob(repo domainRepos.LedgerEventRepository, sinks ...EventSink) *EventDispatchJob {
	return &EventDispatchJob{
		repo:     repo,
		sinks:    sinks,
		interval: 5 * time.Second,
		batch:    100,
		stop:     make(chan struct{}),
	}
}

func (j *EventDispatchJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting ledger event dispatcher")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "ledger event dispatcher stopped")
			return
		case <-j.stop:
			logger.Info(ctx, "ledger event dispatcher stopped")
			return
		case <-ticker.C:
			j.dispatchPending(ctx)
		}
	}
}

func (j *EventDispatchJob) Stop() {
	close(j.stop)
}

func (j *EventDispatchJob) dispatchPending(ctx context.Context) {
	events, err := j.repo.ListUndelivered(ctx, j.batch)
	if err != nil {
		logger.Error(ctx, "failed to fetch undelivered events", zap.Error(err))
		return
	}
	if len(events) == 0 {
		return
	}

	delivered := make([]uuid.UUID, 0, len(events))
	for _, event := range events {
		ok := true
		for _, sink := range j.sinks {
			if err := sink.Deliver(ctx, event); err != nil {
				logger.Error(ctx, "event delivery failed",
					zap.String("event_id", event.ID.String()),
					zap.String("event_type", string(event.EventType)),
					zap.Error(err),
				)
				ok = false
				break
			}
		}
		if !ok {
			// Keep log order: stop at the first failure and retry from
			// here next tick.
			break
		}
		delivered = append(delivered, event.ID)
	}

	if len(delivered) == 0 {
		return
	}
	if err := j.repo.MarkDelivered(ctx, delivered); err != nil {
		logger.Error(ctx, "failed to mark events delivered", zap.Error(err))
	}
}

// LogSink writes delivered events to the structured log. It stands in for
// the notification collaborators (dashboards, email) outside this core.
type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, event *entities.LedgerEvent) error {
	logger.Info(ctx, "ledger event",
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", string(event.EventType)),
		zap.String("actor", event.Actor),
		zap.String("subject", event.Subject),
	)
	return nil
}
