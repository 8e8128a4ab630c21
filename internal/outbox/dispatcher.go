package outbox

import (
	"context"
	"time"

	"carrental/internal/domain"
	"carrental/internal/metrics"

	"github.com/rs/zerolog"
)

type Repository interface {
	PendingBatch(ctx context.Context, maxRetry, limit int) ([]domain.OutboxMessage, error)
	MarkProcessed(ctx context.Context, id string, at time.Time) error
	IncrementRetry(ctx context.Context, id string) error
}

type Publisher interface {
	Publish(ctx context.Context, msg domain.OutboxMessage) error
}

type Dispatcher struct {
	repo      Repository
	publisher Publisher
	maxRetry  int
	batchSize int
	log       zerolog.Logger
}

func NewDispatcher(repo Repository, publisher Publisher, maxRetry, batchSize int, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		maxRetry:  maxRetry,
		batchSize: batchSize,
		log:       log,
	}
}

// DispatchOnce publishes one batch and returns how many messages were delivered.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.PendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, msg := range msgs {
		if err := d.publisher.Publish(ctx, msg); err != nil {
			d.log.Warn().Err(err).Str("outbox_id", msg.ID).Str("type", msg.Type).Msg("outbox publish failed")
			metrics.IncOutbox("failed")
			if err := d.repo.IncrementRetry(ctx, msg.ID); err != nil {
				d.log.Error().Err(err).Str("outbox_id", msg.ID).Msg("outbox retry bump failed")
			}
			continue
		}

		metrics.IncOutbox("published")
		if err := d.repo.MarkProcessed(ctx, msg.ID, time.Now().UTC()); err != nil {
			d.log.Error().Err(err).Str("outbox_id", msg.ID).Msg("outbox mark processed failed")
			continue
		}
		processed++
	}
	return processed, nil
}

type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	log        zerolog.Logger
}

func NewScheduler(d *Dispatcher, interval time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{dispatcher: d, interval: interval, log: log}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("outbox scheduler stopped")
			return
		case <-ticker.C:
			n, err := s.dispatcher.DispatchOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("outbox dispatch error")
			} else if n > 0 {
				s.log.Debug().Int("count", n).Msg("outbox dispatch processed messages")
			}
		}
	}
}
