package reservation

import (
	"context"
	"fmt"

	"carrental/internal/domain"
	"carrental/internal/events"
	"carrental/internal/metrics"
	"carrental/internal/outbox"
	"carrental/internal/repository"

	"github.com/rs/zerolog"
)

// Lifecycle owns every reservation status change and is the only writer of
// vehicle status. Create, Apply and Extend must be given a transaction-bound
// Store; AfterCommit runs once that transaction has committed.
type Lifecycle struct {
	bus Publisher
	log zerolog.Logger
}

func NewLifecycle(bus Publisher, log zerolog.Logger) *Lifecycle {
	return &Lifecycle{bus: bus, log: log}
}

// Create persists r as pending and reserves the vehicle, which the caller
// must already hold locked.
func (l *Lifecycle) Create(ctx context.Context, tx *repository.Store, vehicle *domain.Vehicle, r *domain.Reservation) error {
	r.Status = domain.ReservationPending
	r.VehicleID = vehicle.ID

	if err := tx.Reservations.Create(ctx, r); err != nil {
		return err
	}
	if err := l.syncVehicle(ctx, tx, vehicle); err != nil {
		return err
	}
	_, err := outbox.Enqueue(ctx, tx.Outbox, domain.ActionCreate, r, nil)
	return err
}

// Apply performs action on reservation id.
func (l *Lifecycle) Apply(ctx context.Context, tx *repository.Store, id int64, action domain.Action) (*domain.Reservation, error) {
	r, vehicle, err := l.loadLocked(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	to, err := domain.NextStatus(r.Status, action)
	if err != nil {
		return nil, err
	}
	if err := tx.Reservations.UpdateStatus(ctx, r.ID, action, r.Status, to); err != nil {
		return nil, err
	}
	r.Status = to

	if err := l.syncVehicle(ctx, tx, vehicle); err != nil {
		return nil, err
	}
	if _, err := outbox.Enqueue(ctx, tx.Outbox, action, r, nil); err != nil {
		return nil, err
	}
	return r, nil
}

// Extend records ext and grows r accordingly. r must have been loaded in tx
// with its vehicle locked.
func (l *Lifecycle) Extend(ctx context.Context, tx *repository.Store, r *domain.Reservation, ext *domain.Extension) error {
	if _, err := domain.NextStatus(r.Status, domain.ActionExtend); err != nil {
		return err
	}

	ext.ReservationID = r.ID
	ext.OldEndDate = r.EndDate
	if err := tx.Extensions.Create(ctx, ext); err != nil {
		return err
	}

	dayCount := r.DayCount + ext.AdditionalDays
	total := r.TotalPrice + ext.AdditionalCost
	if err := tx.Reservations.ApplyExtension(ctx, r.ID, ext.NewEndDate, dayCount, total); err != nil {
		return err
	}
	r.EndDate = ext.NewEndDate
	r.DayCount = dayCount
	r.TotalPrice = total
	r.Extended = true

	_, err := outbox.Enqueue(ctx, tx.Outbox, domain.ActionExtend, r, ext)
	return err
}

// LoadLocked reads the reservation, locks its vehicle, then re-reads the
// reservation so the returned state cannot be stale under the lock.
func (l *Lifecycle) LoadLocked(ctx context.Context, tx *repository.Store, id int64) (*domain.Reservation, *domain.Vehicle, error) {
	return l.loadLocked(ctx, tx, id)
}

func (l *Lifecycle) loadLocked(ctx context.Context, tx *repository.Store, id int64) (*domain.Reservation, *domain.Vehicle, error) {
	r, err := tx.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("reservation %d: %w", id, err)
	}
	vehicle, err := tx.Vehicles.GetForUpdate(ctx, r.VehicleID)
	if err != nil {
		return nil, nil, fmt.Errorf("vehicle %d: %w", r.VehicleID, err)
	}
	r, err = tx.Reservations.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("reservation %d: %w", id, err)
	}
	return r, vehicle, nil
}

// syncVehicle derives the vehicle status from its occupying reservations.
// Maintenance is an administrative override and is left alone.
func (l *Lifecycle) syncVehicle(ctx context.Context, tx *repository.Store, vehicle *domain.Vehicle) error {
	if vehicle.Status == domain.VehicleMaintenance {
		return nil
	}

	occupying, err := tx.Reservations.ListOccupying(ctx, vehicle.ID, 0)
	if err != nil {
		return err
	}
	want := domain.VehicleAvailable
	if len(occupying) > 0 {
		want = domain.VehicleRented
	}
	if vehicle.Status == want {
		return nil
	}
	if err := tx.Vehicles.UpdateStatus(ctx, vehicle.ID, want); err != nil {
		return err
	}
	vehicle.Status = want
	return nil
}

// SetMaintenance puts the vehicle into maintenance or takes it out again,
// in which case its status is derived from its reservations.
func (l *Lifecycle) SetMaintenance(ctx context.Context, tx *repository.Store, vehicleID int64, on bool) (*domain.Vehicle, error) {
	vehicle, err := tx.Vehicles.GetForUpdate(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if on {
		if vehicle.Status != domain.VehicleMaintenance {
			if err := tx.Vehicles.UpdateStatus(ctx, vehicle.ID, domain.VehicleMaintenance); err != nil {
				return nil, err
			}
			vehicle.Status = domain.VehicleMaintenance
		}
		return vehicle, nil
	}

	if vehicle.Status == domain.VehicleMaintenance {
		// force a rewrite below
		vehicle.Status = ""
	}
	if err := l.syncVehicle(ctx, tx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// AfterCommit records metrics and fans the change out to subscribers.
// Subscriber failures are logged; the committed change stands.
func (l *Lifecycle) AfterCommit(ctx context.Context, action domain.Action, r *domain.Reservation, ext *domain.Extension) {
	metrics.IncTransition(string(action))
	l.log.Info().
		Int64("reservation_id", r.ID).
		Int64("vehicle_id", r.VehicleID).
		Str("action", string(action)).
		Str("status", string(r.Status)).
		Msg("reservation updated")

	if l.bus == nil {
		return
	}
	err := l.bus.Publish(ctx, events.Event{
		Type:        outbox.EventType(action),
		Action:      action,
		Reservation: *r,
		Extension:   ext,
	})
	if err != nil {
		l.log.Warn().Err(err).Int64("reservation_id", r.ID).Msg("reservation event subscriber failed")
	}
}

// VehicleChanged announces a committed vehicle status change made outside a
// reservation transition.
func (l *Lifecycle) VehicleChanged(ctx context.Context, v *domain.Vehicle) {
	l.log.Info().Int64("vehicle_id", v.ID).Str("status", string(v.Status)).Msg("vehicle status changed")
	if l.bus == nil {
		return
	}
	if err := l.bus.Publish(ctx, events.Event{Type: events.TypeVehicleStatus, SubjectID: v.ID}); err != nil {
		l.log.Warn().Err(err).Int64("vehicle_id", v.ID).Msg("vehicle event subscriber failed")
	}
}
