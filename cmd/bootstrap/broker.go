package bootstrap

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/infra/broker"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (shared.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP_URL not set: booking events are dropped")
		return broker.NoopPublisher{}, nil
	}

	publisher, err := broker.NewAMQPPublisher(cfg.AMQP.URL)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher, nil
}
