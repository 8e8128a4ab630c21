package repository

import (
	"errors"
	"strings"

	"carrental/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"

	OverlapConstraint = "reservations_no_overlap"
)

// translate maps driver and gorm errors onto domain errors. Anything
// without a domain meaning becomes a PersistenceError for op.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgExclusionViolation && pgErr.ConstraintName == OverlapConstraint:
			return domain.ErrVehicleUnavailable
		case pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "ticket"):
			return domain.ErrDuplicateTicket
		}
	}
	if isSQLiteUnique(err, "reservations.ticket_id") {
		return domain.ErrDuplicateTicket
	}

	return &domain.PersistenceError{Op: op, Err: err}
}

func isSQLiteUnique(err error, column string) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}

// IsUniqueViolation reports a unique index violation on any supported driver.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
