package components

import (
	"log/slog"

	"medoffice-booking/internal/handler"
	"medoffice-booking/internal/handler/api"
	"medoffice-booking/internal/handler/middleware"
	"medoffice-booking/internal/pkg/metrics"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewMetricsHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

type handlerParams struct {
	fx.In

	Auth     *api.AuthHandler
	Room     *api.RoomHandler
	Booking  *api.BookingHandler
	Payment  *api.PaymentHandler
	Metrics  *api.MetricsHandler
	AuthMw   *middleware.AuthMiddleware
	Recorder *metrics.Metrics
	Logger   *slog.Logger
}

func newHandlers(p handlerParams) handler.Handlers {
	return handler.Handlers{
		Auth:     p.Auth,
		Room:     p.Room,
		Booking:  p.Booking,
		Payment:  p.Payment,
		Metrics:  p.Metrics,
		AuthMw:   p.AuthMw,
		Recorder: p.Recorder,
		Logger:   p.Logger,
	}
}
