package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one connection or transaction.
type Store struct {
	db *gorm.DB

	Vehicles      *VehicleRepository
	Reservations  *ReservationRepository
	Extensions    *ExtensionRepository
	Users         *UserRepository
	Payments      *PaymentRepository
	Notifications *NotificationRepository
	Outbox        *OutboxRepository
	RefreshTokens *RefreshTokenRepository
	Favorites     *FavoriteRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Vehicles:      NewVehicleRepository(db),
		Reservations:  NewReservationRepository(db),
		Extensions:    NewExtensionRepository(db),
		Users:         NewUserRepository(db),
		Payments:      NewPaymentRepository(db),
		Notifications: NewNotificationRepository(db),
		Outbox:        NewOutboxRepository(db),
		RefreshTokens: NewRefreshTokenRepository(db),
		Favorites:     NewFavoriteRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a Store bound to a single database
// transaction. Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
