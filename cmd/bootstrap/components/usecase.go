package components

import (
	"boardinghouse/internal/domain/booking"
	"boardinghouse/internal/infra/notify"
	"boardinghouse/internal/pkg/clock"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/usecase"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (*booking.PriceCalculator, error) {
		return booking.NewPriceCalculator(cfg.Booking.MonthlyRate)
	},
	func(cfg config.Config) commands.BookingSettings {
		return commands.BookingSettings{
			PaymentWindow: cfg.Booking.PaymentWindow,
			MaxMonths:     cfg.Booking.MaxMonths,
		}
	},
	commands.NewRoomAvailabilityTracker,
	fx.Annotate(
		notify.NewOutboxNotifier,
		fx.As(new(commands.Notifier)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentDeadlineSweeper,
		commands.NewOrphanBookingAssociator,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewRoomQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
