//go:build e2e

package e2e

import (
	"context"
	"testing"
	"time"

	"medoffice-booking/cmd/bootstrap"
	"medoffice-booking/cmd/bootstrap/components"
	"medoffice-booking/internal/infra/db"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// SharedSuite wires the real application against Postgres and Redis
// containers. Each subtest starts from empty tables, the reference rooms and
// an empty Redis db.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	dbCfg := createDatabase(t, startPostgres(t))
	redisAddr := startRedis(t).Addr()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, applyMigrations(ctx, dbCfg), "migrations failed")

	pool, _, err := db.Connect(dbCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	s.DB = pool

	s.startApp(t, testConfig(dbCfg, redisAddr))
}

// SetupSubTest resets state between s.Run cases.
func (s *SharedSuite) SetupSubTest() {
	t := s.T()
	require.NoError(t, dbtest.ResetDB(s.DB), "failed to reset database")
	require.NoError(t, s.Redis.FlushDB(context.Background()).Err(), "failed to flush redis")
}

func (s *SharedSuite) startApp(t *testing.T, cfg config.Config) {
	t.Helper()

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *pgxpool.Pool { return s.DB }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.CacheModule,
		bootstrap.BrokerModule,
		bootstrap.MetricsModule,
		bootstrap.PricingModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&s.Router, &s.Config, &s.Redis),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start application")
	require.NotNil(t, s.Router)
	require.NotNil(t, s.Redis, "redis client should be enabled in e2e")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(ctx)
	})
}

// testConfig points the app at the containers. AMQP stays unset, so booking
// events go to the no-op publisher.
func testConfig(dbCfg config.DBConfig, redisAddr string) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Redis.Addr = redisAddr
	cfg.AMQP.URL = ""
	cfg.Metrics.Enabled = false
	return cfg
}
