package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionBooking(t *testing.T) {
	assert.True(t, CanTransitionBooking(BookingPending, BookingConfirmed))
	assert.True(t, CanTransitionBooking(BookingPending, BookingRejected))
	assert.True(t, CanTransitionBooking(BookingPending, BookingCancelled))

	// all non-pending states are frozen
	for _, from := range []BookingStatus{BookingConfirmed, BookingRejected, BookingCancelled} {
		for _, to := range []BookingStatus{BookingPending, BookingConfirmed, BookingRejected, BookingCancelled} {
			assert.False(t, CanTransitionBooking(from, to), "from=%s to=%s", from, to)
		}
	}

	assert.False(t, CanTransitionBooking(BookingPending, BookingPending))
}

func TestCanTransitionService(t *testing.T) {
	assert.True(t, CanTransitionService(ServicePending, ServiceConfirmed))
	assert.True(t, CanTransitionService(ServicePending, ServiceRejected))

	assert.False(t, CanTransitionService(ServiceConfirmed, ServiceRejected))
	assert.False(t, CanTransitionService(ServiceRejected, ServiceConfirmed))
	assert.False(t, CanTransitionService(ServicePending, ServicePending))
}

func TestBookingStatusPredicates(t *testing.T) {
	assert.True(t, BookingPending.Active())
	assert.True(t, BookingConfirmed.Active())
	assert.False(t, BookingRejected.Active())
	assert.False(t, BookingCancelled.Active())

	assert.False(t, BookingPending.IsTerminal())
	assert.True(t, BookingConfirmed.IsTerminal())
	assert.True(t, BookingRejected.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
}
