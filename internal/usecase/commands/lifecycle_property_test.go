package commands_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Random interleavings of creations, admin transitions, proofs, clock jumps and
// sweeps must never leave a room out of step with the bookings holding it.
func TestLifecycle_RoomInvariantUnderRandomOperations(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			f := newFixture(t)
			f.allowNotifications()
			rng := rand.New(rand.NewPCG(seed, seed*31))
			rooms := []uuid.UUID{f.roomID, f.addRoom("A-102", 1), f.addRoom("B-201", 3)}
			var ids []uuid.UUID

			for step := 0; step < 200; step++ {
				var err error
				switch op := rng.IntN(10); {
				case op < 3 || len(ids) == 0:
					in := f.input(rooms[rng.IntN(len(rooms))])
					in.CheckIn = f.clock.Now().AddDate(0, 0, 7)
					view, createErr := f.bookings.CreateBooking(context.Background(), shared.AnonymousActor(), in)
					if err = createErr; err == nil {
						ids = append(ids, view.ID)
					}
				case op < 7:
					target := booking.AllStatuses()[rng.IntN(len(booking.AllStatuses()))]
					_, err = f.bookings.ChangeStatus(context.Background(), f.admin, ids[rng.IntN(len(ids))], target)
				case op < 8:
					_, err = f.bookings.AttachPaymentProof(context.Background(), f.admin, ids[rng.IntN(len(ids))], "proofs/p.jpg")
				case op < 9:
					f.clock.Add(time.Duration(rng.IntN(30)) * time.Hour)
				default:
					_, err = f.sweeper.Run(context.Background())
				}

				if err != nil {
					require.True(t,
						errs.Is(err, errs.ErrValidation) ||
							errs.Is(err, errs.ErrRoomUnavailable) ||
							errs.Is(err, errs.ErrInvalidTransition),
						"step %d: unexpected error %v", step, err)
				}
				f.assertRoomInvariant()
				if t.Failed() {
					t.Fatalf("invariant broken at step %d", step)
				}
			}

			for _, id := range ids {
				view := f.get(id)
				if view.Status == booking.StatusApproved.String() {
					assert.NotNil(t, view.PaymentDueAt, "approved booking %s without deadline", id)
				}
				if view.Status == booking.StatusPaid.String() {
					assert.NotNil(t, view.PaymentProofRef, "paid booking %s without proof", id)
					assert.Nil(t, view.PaymentDueAt)
				}
			}
		})
	}
}
