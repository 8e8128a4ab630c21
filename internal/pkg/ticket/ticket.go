// Package ticket issues and parses reservation ticket ids of the form
// CAR-<vehicleID>-<CODE>-<unix millis>.
package ticket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	prefix     = "CAR"
	codeLength = 6
)

var ErrMalformed = errors.New("malformed ticket id")

type Ticket struct {
	VehicleID int64
	Code      string
	IssuedAt  time.Time
}

func New(vehicleID int64, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s-%d", prefix, vehicleID, RandomCode(codeLength), now.UnixMilli())
}

// RandomCode returns n upper-case hex characters taken from a random UUID.
func RandomCode(n int) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(raw) {
		n = len(raw)
	}
	return raw[:n]
}

func Parse(id string) (Ticket, error) {
	parts := strings.Split(id, "-")
	if len(parts) != 4 || parts[0] != prefix || len(parts[2]) != codeLength {
		return Ticket{}, ErrMalformed
	}

	vehicleID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || vehicleID <= 0 {
		return Ticket{}, ErrMalformed
	}
	millis, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return Ticket{}, ErrMalformed
	}

	return Ticket{
		VehicleID: vehicleID,
		Code:      parts[2],
		IssuedAt:  time.UnixMilli(millis).UTC(),
	}, nil
}
