package bootstrap

import (
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/metrics"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
)

// NewMetrics returns nil when metrics are disabled; every recorder method
// accepts a nil receiver.
func NewMetrics(cfg config.Config) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.ServiceName)
}
