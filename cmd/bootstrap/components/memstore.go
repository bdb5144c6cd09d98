package components

import (
	"log/slog"

	"boardinghouse/internal/domain/room"
	"boardinghouse/internal/infra/memstore"
	"boardinghouse/internal/infra/notify"
	"boardinghouse/internal/pkg/config"

	"go.uber.org/fx"
)

// MemoryPersistenceModule keeps everything in process memory. Data is lost on restart.
var MemoryPersistenceModule = fx.Module("persistence/memory",
	fx.Provide(
		NewDemoStore,
		memstore.NewUnitOfWork,
		memstore.NewBookingReadStore,
		memstore.NewRoomReadStore,
		memstore.NewUserReadStore,
		func(store *memstore.Store) notify.JobWriter {
			return store
		},
	),
)

var demoRooms = []struct {
	number   string
	floor    int
	capacity int
}{
	{"A-101", 1, 1},
	{"A-102", 1, 2},
	{"B-201", 2, 1},
	{"B-202", 2, 2},
}

// NewDemoStore returns a memory store with a small room catalog.
func NewDemoStore(cfg config.Config, logger *slog.Logger) (*memstore.Store, error) {
	store := memstore.New()
	for _, r := range demoRooms {
		rm, err := room.NewRoom(r.number, r.floor, cfg.Booking.MonthlyRate, r.capacity)
		if err != nil {
			return nil, err
		}
		store.SeedRoom(rm)
	}
	logger.Warn("using in-memory store; data is not persisted", "rooms", len(demoRooms))
	return store, nil
}
