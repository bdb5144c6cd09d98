//go:build e2e

package uow_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/infra/notify"
	"boardinghouse/internal/infra/pgtest"
	"boardinghouse/internal/infra/readstore"
	"boardinghouse/internal/infra/repository"
	sqlc "boardinghouse/internal/infra/sqlc/generated"
	"boardinghouse/internal/infra/uow"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const monthlyRate int64 = 1_500_000

var baseNow = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

type PostgresLifecycleSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	clock    *clock.MockClock
	bookings commands.BookingCommands
	sweeper  commands.PaymentDeadlineSweeper
	orphans  commands.OrphanBookingAssociator
	queries  queries.BookingQueries
	rooms    queries.RoomQueries
	roomID   uuid.UUID
	admin    shared.Actor
}

func TestPostgresLifecycleSuite(t *testing.T) {
	suite.Run(t, new(PostgresLifecycleSuite))
}

func (s *PostgresLifecycleSuite) SetupTest() {
	s.pool, _ = pgtest.NewDatabase(s.T())
	s.clock = clock.NewMockClock(baseNow)

	q := sqlc.New()
	unitOfWork := uow.NewPostgresUoW(s.pool, q)
	calc, err := booking.NewPriceCalculator(monthlyRate)
	s.Require().NoError(err)

	s.queries = queries.NewBookingQueries(readstore.NewBookingReadStore(q, s.pool))
	s.rooms = queries.NewRoomQueries(readstore.NewRoomReadStore(q, s.pool))
	s.bookings = commands.NewBookingCommands(
		unitOfWork,
		calc,
		commands.NewRoomAvailabilityTracker(),
		notify.NewOutboxNotifier(repository.NewNotificationRepository(q, s.pool), s.clock),
		s.queries,
		s.clock,
		commands.BookingSettings{PaymentWindow: 24 * time.Hour, MaxMonths: 24},
	)
	s.sweeper = commands.NewPaymentDeadlineSweeper(unitOfWork, s.bookings, s.clock)
	s.orphans = commands.NewOrphanBookingAssociator(unitOfWork, readstore.NewUserReadStore(q, s.pool))

	s.roomID = pgtest.SeedRoom(s.T(), s.pool, "A-101", monthlyRate, 2)
	s.admin = shared.UserActor(uuid.New(), user.RoleAdmin)
}

func (s *PostgresLifecycleSuite) input() commands.CreateBookingInput {
	months := 2
	return commands.CreateBookingInput{
		RoomID:         s.roomID,
		CheckIn:        time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		DurationMonths: &months,
		GuestCount:     2,
		ContactName:    "Sari Wulandari",
		ContactEmail:   "Sari@Example.com ",
		ContactPhone:   "+62 812-3456-789",
		PaymentMethod:  "bank_transfer",
	}
}

func (s *PostgresLifecycleSuite) create() *queries.BookingView {
	view, err := s.bookings.CreateBooking(context.Background(), shared.AnonymousActor(), s.input())
	s.Require().NoError(err)
	return view
}

func (s *PostgresLifecycleSuite) roomAvailable() bool {
	view, err := s.rooms.GetByID(context.Background(), s.roomID)
	s.Require().NoError(err)
	return view.IsAvailable
}

func (s *PostgresLifecycleSuite) jobCount() int {
	var n int
	err := s.pool.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs").Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *PostgresLifecycleSuite) TestCreateBooking_PersistsDatesAndPrice() {
	view := s.create()

	stored, err := s.queries.GetByIDSystem(context.Background(), view.ID)
	s.Require().NoError(err)
	s.Equal(booking.StatusPending.String(), stored.Status)
	s.Equal("2024-06-15", stored.CheckIn.Format(time.DateOnly))
	s.Equal("2024-08-15", stored.CheckOut.Format(time.DateOnly))
	s.EqualValues(2*monthlyRate, stored.TotalPrice)
	s.Equal("sari@example.com", stored.ContactEmail)
	s.Nil(stored.UserID)
	s.True(s.roomAvailable())
}

func (s *PostgresLifecycleSuite) TestApproveThenPay() {
	ctx := context.Background()
	view := s.create()

	approved, err := s.bookings.ChangeStatus(ctx, s.admin, view.ID, booking.StatusApproved)
	s.Require().NoError(err)
	s.Require().NotNil(approved.Booking.PaymentDueAt)
	s.True(approved.Booking.PaymentDueAt.Equal(baseNow.Add(24 * time.Hour)))
	s.False(s.roomAvailable())
	s.Equal(2, s.jobCount())

	_, err = s.bookings.ChangeStatus(ctx, s.admin, view.ID, booking.StatusPaid)
	s.True(errs.Is(err, errs.ErrInvalidTransition), "paid without proof must fail: %v", err)

	_, err = s.bookings.AttachPaymentProof(ctx, s.admin, view.ID, "proofs/receipt.jpg")
	s.Require().NoError(err)

	paid, err := s.bookings.ChangeStatus(ctx, s.admin, view.ID, booking.StatusPaid)
	s.Require().NoError(err)
	s.Nil(paid.Booking.PaymentDueAt)
	s.False(s.roomAvailable())

	_, err = s.bookings.ChangeStatus(ctx, s.admin, view.ID, booking.StatusCompleted)
	s.Require().NoError(err)
	s.True(s.roomAvailable())
}

func (s *PostgresLifecycleSuite) TestConcurrentApprovals_OnlyOneWins() {
	const n = 6
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = s.create().ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := s.bookings.ChangeStatus(context.Background(), s.admin, id, booking.StatusApproved)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.Is(err, commands.ErrRoomNoLongerAvailable):
				taken++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(n-1, taken)
	s.False(s.roomAvailable())

	approved, err := s.queries.ListAll(context.Background(), s.admin, queries.BookingFilter{Status: booking.StatusApproved.String()})
	s.Require().NoError(err)
	s.Len(approved, 1)
}

func (s *PostgresLifecycleSuite) TestSweep_CancelsOverdue() {
	ctx := context.Background()
	overdue := s.create()
	_, err := s.bookings.ChangeStatus(ctx, s.admin, overdue.ID, booking.StatusApproved)
	s.Require().NoError(err)

	s.clock.Add(25 * time.Hour)

	result, err := s.sweeper.Run(ctx)
	s.Require().NoError(err)
	s.Equal(commands.SweepResult{Candidates: 1, Cancelled: 1}, result)
	s.True(s.roomAvailable())

	stored, err := s.queries.GetByIDSystem(ctx, overdue.ID)
	s.Require().NoError(err)
	s.Equal(booking.StatusCancelled.String(), stored.Status)

	again, err := s.sweeper.Run(ctx)
	s.Require().NoError(err)
	s.Zero(again.Candidates)
}

func (s *PostgresLifecycleSuite) TestOrphanAssociation() {
	ctx := context.Background()
	orphan := s.create()
	userID := pgtest.SeedUser(s.T(), s.pool, "sari@example.com", "0812-3456-789", "$2a$04$invalidhashforteststhatisneverchecked000000000000000", "user")

	claimed, err := s.orphans.AssociateOrphanBookings(ctx, userID, "SARI@example.com", "")
	s.Require().NoError(err)
	s.EqualValues(1, claimed)

	stored, err := s.queries.GetByIDSystem(ctx, orphan.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.UserID)
	assert.Equal(s.T(), userID, *stored.UserID)

	again, err := s.orphans.AssociateOrphanBookings(ctx, userID, "sari@example.com", "0812-3456-789")
	require.NoError(s.T(), err)
	s.Zero(again)
}
