package main

import (
	"context"
	"errors"
	"os"
	"time"

	"carrental/internal/config"
	"carrental/internal/database"
	"carrental/internal/domain"
	"carrental/internal/logger"
	"carrental/internal/modules/auth"
	"carrental/internal/pkg/utils"
	"carrental/internal/repository"

	"github.com/rs/zerolog"
)

var fleet = []domain.Vehicle{
	{Make: "Toyota", Model: "Corolla", Year: 2022, Color: "white", Type: "sedan", Seats: 5, Transmission: domain.TransmissionAutomatic, PricePerDay: 45, Plate: "CR-1001"},
	{Make: "Honda", Model: "Civic", Year: 2021, Color: "blue", Type: "sedan", Seats: 5, Transmission: domain.TransmissionManual, PricePerDay: 40, Plate: "CR-1002"},
	{Make: "Ford", Model: "Transit", Year: 2020, Color: "white", Type: "van", Seats: 9, Transmission: domain.TransmissionManual, PricePerDay: 85, Plate: "CR-1003"},
	{Make: "Tesla", Model: "Model 3", Year: 2023, Color: "black", Type: "sedan", Seats: 5, Transmission: domain.TransmissionAutomatic, PricePerDay: 110, Plate: "CR-1004"},
	{Make: "Jeep", Model: "Wrangler", Year: 2022, Color: "red", Type: "suv", Seats: 4, Transmission: domain.TransmissionAutomatic, PricePerDay: 95, Plate: "CR-1005"},
	{Make: "Volkswagen", Model: "Golf", Year: 2019, Color: "grey", Type: "hatchback", Seats: 5, Transmission: domain.TransmissionManual, PricePerDay: 35, Plate: "CR-1006"},
}

func main() {
	log := logger.New("dev", "info")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}
	store := repository.NewStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seedAdmin(ctx, store, log); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	created, err := seedFleet(ctx, store)
	if err != nil {
		log.Fatal().Err(err).Msg("seed vehicles")
	}
	log.Info().Int("vehicles_created", created).Msg("seed completed")
}

// seedAdmin creates the admin account once. SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD override the defaults.
func seedAdmin(ctx context.Context, store *repository.Store, log zerolog.Logger) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@carrental.local")
	password := envOr("SEED_ADMIN_PASSWORD", "admin123")

	if _, err := store.Users.GetByEmail(ctx, email); err == nil {
		log.Info().Str("email", email).Msg("admin already exists")
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		FirstName:    "Fleet",
		LastName:     "Admin",
	}
	if err := store.Users.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("admin created")
	return nil
}

// seedFleet inserts vehicles whose plate is not yet registered.
func seedFleet(ctx context.Context, store *repository.Store) (int, error) {
	created := 0
	for _, v := range fleet {
		if _, err := store.Vehicles.GetByPlate(ctx, v.Plate); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			return created, err
		}

		v.Status = domain.VehicleAvailable
		v.Photos = utils.EncodePhotos(nil)
		if err := store.Vehicles.Create(ctx, &v); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
