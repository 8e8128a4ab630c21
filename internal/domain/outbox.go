package domain

import "time"

type OutboxMessage struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Type        string     `json:"type" gorm:"size:64;not null;index"`
	AggregateID int64      `json:"aggregate_id" gorm:"not null"`
	Payload     string     `json:"payload" gorm:"type:text;not null"`
	OccurredAt  time.Time  `json:"occurred_at" gorm:"not null"`
	RetryCount  int        `json:"retry_count" gorm:"not null;default:0"`
	ProcessedAt *time.Time `json:"processed_at,omitempty" gorm:"index"`
}
