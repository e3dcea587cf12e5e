package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending,
		BookingStatusApproved,
		BookingStatusRejected,
		BookingStatusConfirmed,
		BookingStatusCancelled,
		BookingStatusCompleted,
	}

	allowed := map[BookingStatus][]BookingStatus{
		BookingStatusPending:   {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
		BookingStatusApproved:  {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted},
		BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusApproved.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusRejected.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
}

func TestBookingStatusRevenueAndReviewability(t *testing.T) {
	counting := []BookingStatus{BookingStatusApproved, BookingStatusConfirmed, BookingStatusCompleted}
	for _, s := range counting {
		assert.True(t, s.CountsTowardRevenue(), "%s", s)
		assert.True(t, s.IsReviewable(), "%s", s)
	}

	excluded := []BookingStatus{BookingStatusPending, BookingStatusRejected, BookingStatusCancelled}
	for _, s := range excluded {
		assert.False(t, s.CountsTowardRevenue(), "%s", s)
		assert.False(t, s.IsReviewable(), "%s", s)
	}
}

func TestUnknownStatusHasNoTransitions(t *testing.T) {
	assert.False(t, BookingStatus("archived").CanTransitionTo(BookingStatusApproved))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusPending))
}
