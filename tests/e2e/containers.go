//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"medoffice-booking/internal/infra/db"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "test"
	pgPassword = "testpass"
	pgPort     = nat.Port("5432/tcp")
	redisPort  = nat.Port("6379/tcp")
)

// sharedContainer starts one container per test process; every suite in the
// process gets its own database or Redis db on top of it.
type sharedContainer struct {
	once      sync.Once
	container testcontainers.Container
	err       error
}

var (
	postgresContainer sharedContainer
	redisContainer    sharedContainer
)

type endpoint struct {
	Host string
	Port nat.Port
}

func (e endpoint) Addr() string {
	return net.JoinHostPort(e.Host, e.Port.Port())
}

func (sc *sharedContainer) start(t *testing.T, req testcontainers.ContainerRequest, port nat.Port) endpoint {
	t.Helper()

	sc.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		sc.container, sc.err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
	})
	require.NoError(t, sc.err, "failed to start %s", req.Image)

	ctx := context.Background()
	host, err := sc.container.Host(ctx)
	require.NoError(t, err)
	mapped, err := sc.container.MappedPort(ctx, port)
	require.NoError(t, err)

	return endpoint{Host: host, Port: mapped}
}

func startPostgres(t *testing.T) endpoint {
	return postgresContainer.start(t, testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
		},
		// durability is irrelevant for throwaway booking data
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
			return adminDSN(endpoint{Host: host, Port: port})
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "medoffice-e2e"},
	}, pgPort)
}

func startRedis(t *testing.T) endpoint {
	return redisContainer.start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{string(redisPort)},
		Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
		WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(time.Minute),
		Labels:       map[string]string{"purpose": "medoffice-e2e"},
	}, redisPort)
}

func adminDSN(pg endpoint) string {
	return fmt.Sprintf("postgres://%s:%s@%s/postgres?sslmode=disable", pgUser, pgPassword, pg.Addr())
}

// createDatabase makes a uniquely named database so parallel test processes
// sharing the container never see each other's bookings.
func createDatabase(t *testing.T, pg endpoint) config.DBConfig {
	t.Helper()

	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	admin, err := pgxpool.New(ctx, adminDSN(pg))
	require.NoError(t, err)
	defer admin.Close()

	// CREATE DATABASE serialises on the template; concurrent processes can collide
	for attempt := 1; ; attempt++ {
		_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
		if err == nil || attempt == 5 {
			break
		}
		slog.Warn("retrying CREATE DATABASE", "attempt", attempt, "error", err.Error())
		time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
	}
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN(pg))
		if err != nil {
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	return config.DBConfig{
		Host:     pg.Host,
		Port:     pg.Port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
}

// applyMigrations runs every migrations/*.sql file in name order.
func applyMigrations(ctx context.Context, cfg config.DBConfig) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errs.Wrap(err, "read migrations dir")
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)

	pool, _, err := db.Connect(cfg)
	if err != nil {
		return errs.Wrap(err, "connect for migrations")
	}
	defer pool.Close()

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return errs.Wrapf(err, "read migration %s", name)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrapf(err, "apply migration %s", name)
		}
	}
	return nil
}

// migrationsDir walks up from the package under test to the module root.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errs.Wrap(err, "getwd")
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "migrations"), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New("module root with migrations/ not found")
		}
		dir = parent
	}
}
