package repository

import (
	"context"
	"testing"
	"time"

	"boardinghouse/internal/infra"
	sqlc "boardinghouse/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockWriteQueries struct {
	mock.Mock
}

func (m *MockWriteQueries) CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockWriteQueries) UpdateBookingState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStateParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) ClaimOrphanBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOrphanBookingsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) SetRoomAvailability(ctx context.Context, db sqlc.DBTX, arg sqlc.SetRoomAvailabilityParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) UpdateUserLastLogin(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateUserLastLoginParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWriteQueries) CreateNotificationJob(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateNotificationJobParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func TestClaimOrphans(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "claims matching rows", affected: 2},
		{name: "nothing to claim", affected: 0},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockWriteQueries)
			want := sqlc.ClaimOrphanBookingsParams{UserID: userID, Email: "sari@example.com", Phone: "628123"}
			q.On("ClaimOrphanBookings", mock.Anything, mock.Anything, want).Return(tt.affected, tt.mockError)

			repo := NewBookingRepository(q, nil)
			got, err := repo.ClaimOrphans(context.Background(), userID, "sari@example.com", "628123")

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.affected, got)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestSetAvailability(t *testing.T) {
	roomID := uuid.New()

	tests := []struct {
		name      string
		affected  int64
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", affected: 1},
		{name: "missing room", affected: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockWriteQueries)
			q.On("SetRoomAvailability", mock.Anything, mock.Anything,
				sqlc.SetRoomAvailabilityParams{ID: roomID, IsAvailable: false}).Return(tt.affected, tt.mockError)

			err := NewRoomRepository(q, nil).SetAvailability(context.Background(), roomID, false)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
			}
			q.AssertExpectations(t)
		})
	}
}

func TestUpdateLastLogin(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	q := new(MockWriteQueries)
	q.On("UpdateUserLastLogin", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateUserLastLoginParams) bool {
		return p.ID == userID && p.LastLogin.Valid && p.LastLogin.Time.Equal(at)
	})).Return(int64(1), nil)

	err := NewUserRepository(q, nil).UpdateLastLogin(context.Background(), userID, at)

	assert.NoError(t, err)
	q.AssertExpectations(t)
}

func TestCreateJob_DuplicateKey(t *testing.T) {
	q := new(MockWriteQueries)
	q.On("CreateNotificationJob", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateNotificationJobParams) bool {
		return p.Status == "queued" && p.Topic == "booking_approved"
	})).Return(&pgconn.PgError{Code: "23505"})

	err := NewNotificationRepository(q, nil).CreateJob(context.Background(), "email", "booking_approved", []byte(`{}`), time.Now())

	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	q.AssertExpectations(t)
}
