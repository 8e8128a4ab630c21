package catalog

import (
	"context"
	"fmt"
	"strings"

	"carrental/internal/domain"
	"carrental/internal/events"
	"carrental/internal/pkg/utils"
	"carrental/internal/pkg/validator"
	"carrental/internal/repository"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context, f repository.VehicleFilter) ([]domain.Vehicle, error)
}

type Publisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type Service struct {
	vehicles VehicleRepository
	bus      Publisher
}

// NewService builds the catalog. bus may be nil.
func NewService(vehicles VehicleRepository, bus Publisher) *Service {
	return &Service{vehicles: vehicles, bus: bus}
}

func (s *Service) ListVehicles(ctx context.Context, f repository.VehicleFilter) ([]domain.Vehicle, error) {
	if f.Transmission != "" {
		t := domain.Transmission(strings.ToLower(f.Transmission))
		if t != domain.TransmissionManual && t != domain.TransmissionAutomatic {
			return nil, fmt.Errorf("%w: unknown transmission %q", domain.ErrValidation, f.Transmission)
		}
		f.Transmission = string(t)
	}
	if f.MinSeats < 0 || f.MaxPrice < 0 {
		return nil, domain.ErrValidation
	}
	return s.vehicles.List(ctx, f)
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

// CreateVehicle adds a vehicle to the fleet as available.
func (s *Service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Color:        strings.ToLower(strings.TrimSpace(req.Color)),
		Type:         strings.ToLower(strings.TrimSpace(req.Type)),
		Seats:        req.Seats,
		Transmission: domain.Transmission(strings.ToLower(req.Transmission)),
		PricePerDay:  req.PricePerDay,
		Plate:        strings.ToUpper(strings.TrimSpace(req.Plate)),
		Description:  req.Description,
		Photos:       utils.EncodePhotos(req.Photos),
		Status:       domain.VehicleAvailable,
	}
	if err := validator.Check(v); err != nil {
		return nil, err
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: plate %s is already registered", domain.ErrValidation, v.Plate)
		}
		return nil, err
	}
	if s.bus != nil {
		// the vehicle is stored; subscriber failures do not undo it
		_ = s.bus.Publish(ctx, events.Event{Type: events.TypeVehicleCreated, SubjectID: v.ID})
	}
	return v, nil
}
