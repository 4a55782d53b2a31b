package bootstrap

import (
	"log/slog"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra/payment"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/password"
	"medoffice-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PricingModule = fx.Module("pricing",
	fx.Provide(
		NewClock,
		NewPricingTable,
		fx.Annotate(
			booking.NewDefaultPriceCalculator,
			fx.As(new(booking.PriceCalculator)),
		),
		func(clk clock.Clock, calc booking.PriceCalculator) *booking.Services {
			return &booking.Services{
				Clock:           clk,
				PriceCalculator: calc,
			}
		},
		fx.Annotate(
			payment.NewStubProcessor,
			fx.As(new(shared.PaymentProcessor)),
		),
		password.NewHasher,
	),
)

// NewClock runs in the office's zone so "today" matches the front desk.
func NewClock(cfg config.Config) (clock.Clock, error) {
	loc, err := time.LoadLocation(cfg.Server.TimeZone)
	if err != nil {
		return nil, err
	}
	return clock.NewRealClockIn(loc), nil
}

func NewPricingTable(cfg config.Config) (booking.PricingTable, error) {
	table, err := booking.LoadPricingTable(cfg.Pricing.File)
	if err != nil {
		return booking.PricingTable{}, err
	}
	slog.Info("pricing table loaded",
		"file", cfg.Pricing.File,
		"daily_full_cents", table.Daily.Full.Cents(),
		"tax_basis_points", table.TaxRateBasisPoints,
		"deposit_cents", table.SecurityDeposit.Cents())
	return table, nil
}
