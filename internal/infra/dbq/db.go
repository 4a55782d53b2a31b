// Package dbq holds the SQL for every table, built with squirrel and scanned
// with pgx. Repositories and read stores depend on narrow interfaces over
// *Queries so they can be tested without a database.
package dbq

import (
	"context"

	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

type sqlizer interface {
	ToSql() (string, []any, error)
}

func exec(ctx context.Context, db psqlbuilder.DBTX, b sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func selectMany[T any](ctx context.Context, db psqlbuilder.DBTX, b squirrel.SelectBuilder) ([]T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

func selectOne[T any](ctx context.Context, db psqlbuilder.DBTX, b squirrel.SelectBuilder) (T, error) {
	var zero T
	query, args, err := b.ToSql()
	if err != nil {
		return zero, err
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

func returning[T any](ctx context.Context, db psqlbuilder.DBTX, b sqlizer) (T, error) {
	var out T
	query, args, err := b.ToSql()
	if err != nil {
		return out, err
	}
	err = db.QueryRow(ctx, query, args...).Scan(&out)
	return out, err
}
