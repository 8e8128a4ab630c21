package auth

import (
	"context"

	"carrental/internal/events"
)

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}
