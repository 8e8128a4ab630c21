package reservation

import (
	"context"

	"carrental/internal/events"
)

// Publisher receives lifecycle events once their transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}
