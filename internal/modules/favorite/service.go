package favorite

import (
	"context"

	"carrental/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, userID, vehicleID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, vehicleID int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(ctx context.Context, userID, vehicleID int64) (bool, error)
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type Service struct {
	repo     Repository
	vehicles VehicleReader
}

func NewService(repo Repository, vehicles VehicleReader) *Service {
	return &Service{repo: repo, vehicles: vehicles}
}

// Add fails with ErrNotFound for unknown vehicles. Adding twice is a no-op.
func (s *Service) Add(ctx context.Context, userID, vehicleID int64) (*domain.Favorite, error) {
	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	fav, err := s.repo.Add(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}
	fav.Vehicle = v
	return fav, nil
}

func (s *Service) Remove(ctx context.Context, userID, vehicleID int64) error {
	return s.repo.Remove(ctx, userID, vehicleID)
}

func (s *Service) List(ctx context.Context, userID int64, page, perPage int) ([]domain.Favorite, int64, error) {
	return s.repo.ListByUser(ctx, userID, perPage, (page-1)*perPage)
}

func (s *Service) IsFavorite(ctx context.Context, userID, vehicleID int64) (bool, error) {
	return s.repo.Exists(ctx, userID, vehicleID)
}
