package room_test

import (
	"testing"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		price    int64
		capacity int
		wantErr  error
	}{
		{"valid", " A-101 ", 1_500_000, 2, nil},
		{"blank number", "  ", 1_500_000, 2, room.ErrInvalidNumber},
		{"no capacity", "A-101", 1_500_000, 0, room.ErrInvalidCapacity},
		{"negative price", "A-101", -1, 2, room.ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := room.NewRoom(tt.number, 1, tt.price, tt.capacity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A-101", r.Number())
			assert.True(t, r.IsAvailable())
		})
	}
}

func TestRoomFits(t *testing.T) {
	r, err := room.NewRoom("A-101", 1, 1_500_000, 2)
	require.NoError(t, err)

	assert.False(t, r.Fits(0))
	assert.True(t, r.Fits(1))
	assert.True(t, r.Fits(2))
	assert.False(t, r.Fits(3))
}

func TestAvailabilityFor(t *testing.T) {
	for _, s := range booking.AllStatuses() {
		t.Run(s.String(), func(t *testing.T) {
			want := s != booking.StatusApproved && s != booking.StatusPaid
			assert.Equal(t, want, room.AvailabilityFor(s))
		})
	}
}
