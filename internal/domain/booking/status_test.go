package booking_test

import (
	"testing"

	"boardinghouse/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	allowed := map[[2]booking.Status]bool{
		{booking.StatusPending, booking.StatusApproved}:   true,
		{booking.StatusPending, booking.StatusRejected}:    true,
		{booking.StatusPending, booking.StatusCancelled}:   true,
		{booking.StatusApproved, booking.StatusPaid}:       true,
		{booking.StatusApproved, booking.StatusRejected}:   true,
		{booking.StatusApproved, booking.StatusCancelled}:  true,
		{booking.StatusApproved, booking.StatusCompleted}:  true,
		{booking.StatusPaid, booking.StatusCancelled}:      true,
		{booking.StatusPaid, booking.StatusCompleted}:      true,
	}

	for _, from := range booking.AllStatuses() {
		for _, to := range booking.AllStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, allowed[[2]booking.Status{from, to}], from.CanTransitionTo(to))
			})
		}
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status   booking.Status
		terminal bool
		holds    bool
	}{
		{booking.StatusPending, false, false},
		{booking.StatusApproved, false, true},
		{booking.StatusPaid, false, true},
		{booking.StatusRejected, true, false},
		{booking.StatusCompleted, true, false},
		{booking.StatusCancelled, true, false},
	}
	for _, c := range cases {
		t.Run(c.status.String(), func(t *testing.T) {
			assert.Equal(t, c.terminal, c.status.IsTerminal())
			assert.Equal(t, c.holds, c.status.HoldsRoom())
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range booking.AllStatuses() {
		parsed, err := booking.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := booking.ParseStatus("confirmed")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)
	assert.True(t, booking.Status("confirmed").IsTerminal())
}
