package bootstrap

import (
	"log/slog"

	"medoffice-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	fx.Invoke(logConfigSummary),
)

// logConfigSummary records which optional backends this process runs with.
// Secrets and addresses stay out of the log.
func logConfigSummary(logger *slog.Logger, cfg config.Config) {
	pricing := cfg.Pricing.File
	if pricing == "" {
		pricing = "built-in defaults"
	}

	logger.Info("configuration loaded",
		"office_timezone", cfg.Server.TimeZone,
		"request_timeout", cfg.Server.RequestTimeout,
		"db_name", cfg.DB.DBName,
		"redis_enabled", cfg.Redis.Addr != "",
		"amqp_enabled", cfg.AMQP.URL != "",
		"metrics_enabled", cfg.Metrics.Enabled,
		"pricing", pricing)
}
