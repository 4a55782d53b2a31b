package bootstrap

import (
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(NewJWTService),
)

// NewJWTService shares the office clock so token expiry and booking dates
// agree on "now".
func NewJWTService(cfg config.Config, clk clock.Clock) (*jwt.Service, error) {
	ttl, err := cfg.JWT.TokenDuration()
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.JWT.Secret, ttl, jwt.WithClock(clk)), nil
}
