//go:build unit || e2e

package dbtest

import (
	"context"
	"strings"
	"time"

	"medoffice-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var referenceRooms = []struct{ name, description string }{
	{"Room 1", "Consultation room with exam table"},
	{"Room 2", "Consultation room with exam table"},
	{"Room 3", "Procedure room"},
}

// SeedReferenceData restores the three rooms every office starts with.
func SeedReferenceData(ctx context.Context, db DBLike) error {
	for _, r := range referenceRooms {
		if _, err := db.Exec(ctx,
			`INSERT INTO rooms (name, description) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			r.name, r.description); err != nil {
			return errs.Wrapf(err, "seed room %q", r.name)
		}
	}
	return nil
}

// ResetDB empties every application table in one statement, restarting
// identities so room ids are stable across subtests, then reseeds the rooms.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := pool.Query(ctx, `
		SELECT 'public.' || quote_ident(tablename)
		FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
		ORDER BY tablename`)
	if err != nil {
		return errs.Wrap(err, "list tables")
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return errs.Wrap(err, "scan table names")
	}

	if len(tables) > 0 {
		stmt := "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return errs.Wrap(err, "truncate tables")
		}
	}

	return SeedReferenceData(ctx, pool)
}
