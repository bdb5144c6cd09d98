package commands_test

import (
	"context"
	"testing"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/domain/room"
	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/infra/memstore"
	"boardinghouse/internal/mock/commandsmock"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	monthlyRate   int64 = 1_500_000
	paymentWindow       = 24 * time.Hour
)

var baseNow = time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)

type fixture struct {
	t        *testing.T
	store    *memstore.Store
	clock    *clock.MockClock
	notifier *commandsmock.MockNotifier
	uow      shared.UnitOfWork
	bookings commands.BookingCommands
	sweeper  commands.PaymentDeadlineSweeper
	orphans  commands.OrphanBookingAssociator
	queries  queries.BookingQueries
	roomID   uuid.UUID
	owner    shared.Actor
	admin    shared.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := memstore.New()
	clk := clock.NewMockClock(baseNow)
	notifier := commandsmock.NewMockNotifier(ctrl)
	uow := memstore.NewUnitOfWork(store)

	calc, err := booking.NewPriceCalculator(monthlyRate)
	require.NoError(t, err)

	bookingQueries := queries.NewBookingQueries(memstore.NewBookingReadStore(store))
	bookings := commands.NewBookingCommands(
		uow,
		calc,
		commands.NewRoomAvailabilityTracker(),
		notifier,
		bookingQueries,
		clk,
		commands.BookingSettings{PaymentWindow: paymentWindow, MaxMonths: 24},
	)

	f := &fixture{
		t:        t,
		store:    store,
		clock:    clk,
		notifier: notifier,
		uow:      uow,
		bookings: bookings,
		sweeper:  commands.NewPaymentDeadlineSweeper(uow, bookings, clk),
		orphans:  commands.NewOrphanBookingAssociator(uow, memstore.NewUserReadStore(store)),
		queries:  bookingQueries,
		owner:    shared.UserActor(uuid.New(), user.RoleUser),
		admin:    shared.UserActor(uuid.New(), user.RoleAdmin),
	}
	f.roomID = f.addRoom("A-101", 2)
	return f
}

func (f *fixture) addRoom(number string, capacity int) uuid.UUID {
	f.t.Helper()
	r, err := room.NewRoom(number, 1, monthlyRate, capacity)
	require.NoError(f.t, err)
	f.store.SeedRoom(r)
	return r.ID()
}

// allowNotifications accepts any number of approval notifications.
func (f *fixture) allowNotifications() {
	f.notifier.EXPECT().BookingApproved(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f *fixture) input(roomID uuid.UUID) commands.CreateBookingInput {
	months := 1
	return commands.CreateBookingInput{
		RoomID:         roomID,
		CheckIn:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DurationMonths: &months,
		GuestCount:     1,
		ContactName:    "Sari Wulandari",
		ContactEmail:   "sari@example.com",
		ContactPhone:   "+62 812-3456-789",
		PaymentMethod:  "bank_transfer",
	}
}

func (f *fixture) create(actor shared.Actor, roomID uuid.UUID) *queries.BookingView {
	f.t.Helper()
	view, err := f.bookings.CreateBooking(context.Background(), actor, f.input(roomID))
	require.NoError(f.t, err)
	return view
}

func (f *fixture) changeStatus(actor shared.Actor, id uuid.UUID, target booking.Status) *commands.TransitionResult {
	f.t.Helper()
	res, err := f.bookings.ChangeStatus(context.Background(), actor, id, target)
	require.NoError(f.t, err)
	return res
}

func (f *fixture) get(id uuid.UUID) *queries.BookingView {
	f.t.Helper()
	view, err := f.queries.GetByIDSystem(context.Background(), id)
	require.NoError(f.t, err)
	return view
}

func (f *fixture) roomAvailable(id uuid.UUID) bool {
	f.t.Helper()
	available, ok := f.store.RoomAvailable(id)
	require.True(f.t, ok)
	return available
}

// assertRoomInvariant: a room is unavailable exactly when one approved or paid booking holds it.
func (f *fixture) assertRoomInvariant() {
	f.t.Helper()
	for _, id := range f.store.RoomIDs() {
		active := f.store.ActiveBookingCount(id)
		assert.LessOrEqual(f.t, active, 1, "room %s has %d active bookings", id, active)
		assert.Equal(f.t, active == 0, f.roomAvailable(id), "room %s availability out of sync", id)
	}
}
