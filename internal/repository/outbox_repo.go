package repository

import (
	"context"
	"time"

	"carrental/internal/domain"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) Insert(ctx context.Context, m *domain.OutboxMessage) error {
	return translate("insert outbox message", r.db.WithContext(ctx).Create(m).Error)
}

// PendingBatch returns unprocessed messages that have not exhausted their retries, oldest first.
func (r *OutboxRepository) PendingBatch(ctx context.Context, maxRetry, limit int) ([]domain.OutboxMessage, error) {
	var out []domain.OutboxMessage
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL AND retry_count < ?", maxRetry).
		Order("occurred_at ASC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, translate("load outbox batch", err)
	}
	return out, nil
}

func (r *OutboxRepository) MarkProcessed(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&domain.OutboxMessage{}).
		Where("id = ?", id).
		Update("processed_at", at).Error
	return translate("mark outbox processed", err)
}

func (r *OutboxRepository) IncrementRetry(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.OutboxMessage{}).
		Where("id = ?", id).
		Update("retry_count", gorm.Expr("retry_count + 1")).Error
	return translate("bump outbox retry", err)
}

// PurgeProcessed deletes delivered messages older than before.
func (r *OutboxRepository) PurgeProcessed(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("processed_at IS NOT NULL AND processed_at < ?", before).
		Delete(&domain.OutboxMessage{})
	if res.Error != nil {
		return 0, translate("purge outbox", res.Error)
	}
	return res.RowsAffected, nil
}
