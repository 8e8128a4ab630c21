package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus_AllowedPaths(t *testing.T) {
	cases := []struct {
		from   ReservationStatus
		action Action
		want   ReservationStatus
	}{
		{ReservationPending, ActionApprove, ReservationConfirmed},
		{ReservationPending, ActionReject, ReservationRejected},
		{ReservationConfirmed, ActionStart, ReservationActive},
		{ReservationConfirmed, ActionCancel, ReservationCancelled},
		{ReservationConfirmed, ActionComplete, ReservationCompleted},
		{ReservationActive, ActionCancel, ReservationCancelled},
		{ReservationActive, ActionComplete, ReservationCompleted},
		{ReservationConfirmed, ActionExtend, ReservationConfirmed},
		{ReservationActive, ActionExtend, ReservationActive},
	}

	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.action)
		require.NoError(t, err, "%s/%s", tc.from, tc.action)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextStatus_Rejected(t *testing.T) {
	cases := []struct {
		from   ReservationStatus
		action Action
	}{
		{ReservationPending, ActionCancel},
		{ReservationPending, ActionComplete},
		{ReservationPending, ActionExtend},
		{ReservationPending, ActionStart},
		{ReservationConfirmed, ActionApprove},
		{ReservationActive, ActionReject},
		{ReservationRejected, ActionApprove},
		{ReservationCancelled, ActionCancel},
		{ReservationCompleted, ActionExtend},
	}

	for _, tc := range cases {
		_, err := NextStatus(tc.from, tc.action)
		assert.ErrorIs(t, err, ErrInvalidStateTransition, "%s/%s", tc.from, tc.action)

		var terr *TransitionError
		assert.True(t, errors.As(err, &terr))
		assert.Equal(t, tc.from, terr.From)
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, s := range []ReservationStatus{ReservationCompleted, ReservationCancelled, ReservationRejected} {
		assert.True(t, s.IsTerminal())
		assert.False(t, s.IsOccupying())
		for _, a := range []Action{ActionApprove, ActionReject, ActionStart, ActionCancel, ActionComplete, ActionExtend} {
			assert.False(t, CanApply(s, a))
		}
	}
}

func TestParseReservationStatus(t *testing.T) {
	s, err := ParseReservationStatus("active")
	require.NoError(t, err)
	assert.Equal(t, ReservationActive, s)

	_, err = ParseReservationStatus("archived")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReservation_PricePerDay(t *testing.T) {
	r := Reservation{DayCount: 3, TotalPrice: 30000}
	assert.Equal(t, 10000.0, r.PricePerDay())

	assert.Zero(t, (&Reservation{}).PricePerDay())
}
