package components

import (
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/usecase"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewRoomCommands,
		commands.NewDraftCommands,
		commands.NewMaintenanceCommands,
		fx.Annotate(
			commands.NewPaymentCommands,
			fx.ParamTags(``, ``, ``, ``, ``, `name:"paymentCurrency"`),
		),
		fx.Annotate(
			func(cfg config.Config) string { return cfg.Payment.Currency },
			fx.ResultTags(`name:"paymentCurrency"`),
		),
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRoomQueries,
		queries.NewAvailabilityQueries,
		queries.NewPricingQueries,
		queries.NewBookingQueries,
		queries.NewDraftQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
