package admin

import (
	"context"
	"fmt"

	"carrental/internal/cache"
	"carrental/internal/domain"
	"carrental/internal/events"
	"carrental/internal/repository"

	"github.com/rs/zerolog"
)

const statsCacheKey = "carrental:admin:dashboard_stats"

type Service struct {
	vehicles     VehicleCounter
	users        UserReader
	reservations ReservationReader
	cache        cache.Cache
	log          zerolog.Logger
}

func NewService(vehicles VehicleCounter, users UserReader, reservations ReservationReader, c cache.Cache, log zerolog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		vehicles:     vehicles,
		users:        users,
		reservations: reservations,
		cache:        c,
		log:          log,
	}
}

// GetDashboardStats is a pure read. A cached copy is served until the next
// reservation write invalidates it.
func (s *Service) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	hit, err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err != nil {
		s.log.Warn().Err(err).Msg("stats cache read failed")
	}
	if hit {
		return &cached, nil
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, statsCacheKey, stats); err != nil {
		s.log.Warn().Err(err).Msg("stats cache write failed")
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (*DashboardStats, error) {
	var (
		st  DashboardStats
		err error
	)
	if st.TotalVehicles, err = s.vehicles.Count(ctx); err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}
	if st.AvailableVehicles, err = s.vehicles.Count(ctx, domain.VehicleAvailable); err != nil {
		return nil, fmt.Errorf("count available vehicles: %w", err)
	}
	if st.TotalUsers, err = s.users.CountByRole(ctx, domain.RoleUser); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if st.PendingReservations, err = s.reservations.Count(ctx, domain.ReservationPending); err != nil {
		return nil, fmt.Errorf("count pending reservations: %w", err)
	}
	if st.ConfirmedReservations, err = s.reservations.Count(ctx, domain.ReservationConfirmed); err != nil {
		return nil, fmt.Errorf("count confirmed reservations: %w", err)
	}
	if st.TotalRevenue, err = s.reservations.SumTotal(ctx, domain.RevenueStatuses...); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	return &st, nil
}

// InvalidateStats is subscribed to every reservation event.
func (s *Service) InvalidateStats(ctx context.Context, _ events.Event) error {
	return s.cache.Delete(ctx, statsCacheKey)
}

// ListReservations returns every reservation, newest first, optionally
// narrowed to one status.
func (s *Service) ListReservations(ctx context.Context, status string, limit, offset int) ([]domain.Reservation, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	f := repository.ReservationFilter{Limit: limit, Offset: offset}
	if status != "" {
		st, err := domain.ParseReservationStatus(status)
		if err != nil {
			return nil, 0, err
		}
		f.Status = st
	}
	return s.reservations.List(ctx, f)
}

// ListUsers returns one page of accounts of every role, newest first.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}
