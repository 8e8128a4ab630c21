// Package testutil builds in-memory SQLite databases and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"carrental/internal/database"
	"carrental/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Int64

// NewDB opens a migrated in-memory database on a single connection, so
// concurrent transactions in a test are serialised like SQLite in production.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping sqlite test on windows because CGO is disabled")
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func Logger() zerolog.Logger {
	return zerolog.Nop()
}

// Date parses YYYY-MM-DD and panics on bad input.
func Date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func SeedVehicle(t *testing.T, db *gorm.DB, pricePerDay float64) *domain.Vehicle {
	t.Helper()
	n := seq.Add(1)
	v := &domain.Vehicle{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2022,
		Color:        "white",
		Type:         "sedan",
		Seats:        5,
		Transmission: domain.TransmissionAutomatic,
		PricePerDay:  pricePerDay,
		Plate:        fmt.Sprintf("TEST-%04d", n),
		Status:       domain.VehicleAvailable,
	}
	if err := db.WithContext(context.Background()).Create(v).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return v
}

func SeedUser(t *testing.T, db *gorm.DB, role domain.UserRole) *domain.User {
	t.Helper()
	n := seq.Add(1)
	u := &domain.User{
		Email:        fmt.Sprintf("user%d@example.com", n),
		PasswordHash: "x",
		Role:         role,
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", n),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedReservation inserts a reservation row directly, bypassing the lifecycle.
func SeedReservation(t *testing.T, db *gorm.DB, vehicleID, userID int64, start, end string, status domain.ReservationStatus, total float64) *domain.Reservation {
	t.Helper()
	s, e := Date(start), Date(end)
	days := int(e.Sub(s).Hours() / 24)
	if days < 1 {
		days = 1
	}
	r := &domain.Reservation{
		VehicleID:  vehicleID,
		UserID:     userID,
		StartDate:  s,
		EndDate:    e,
		DayCount:   days,
		TotalPrice: total,
		Status:     status,
		TicketID:   fmt.Sprintf("CAR-%d-SEED%02d-%d", vehicleID, seq.Add(1)%100, time.Now().UnixNano()),
	}
	if err := db.Omit("Vehicle").Create(r).Error; err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return r
}
