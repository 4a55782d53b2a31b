package dbq

import (
	"context"
	"time"

	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/Masterminds/squirrel"
)

var roomColumns = []string{
	"id", "name", "description", "pricing_plan", "is_available", "created_at", "updated_at",
}

type Room struct {
	ID          int32     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	PricingPlan string    `db:"pricing_plan"`
	IsAvailable bool      `db:"is_available"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type CreateRoomParams struct {
	Name        string
	Description string
	PricingPlan string
	IsAvailable bool
	CreatedAt   time.Time
}

func (q *Queries) CreateRoom(ctx context.Context, db psqlbuilder.DBTX, arg CreateRoomParams) (int32, error) {
	b := psqlbuilder.Insert("rooms").
		Columns("name", "description", "pricing_plan", "is_available", "created_at", "updated_at").
		Values(arg.Name, arg.Description, arg.PricingPlan, arg.IsAvailable, arg.CreatedAt, arg.CreatedAt).
		Suffix("RETURNING id")
	return returning[int32](ctx, db, b)
}

func (q *Queries) ListRooms(ctx context.Context, db psqlbuilder.DBTX, onlyAvailable bool) ([]Room, error) {
	b := psqlbuilder.Select(roomColumns...).From("rooms").OrderBy("id")
	if onlyAvailable {
		b = b.Where(squirrel.Eq{"is_available": true})
	}
	return selectMany[Room](ctx, db, b)
}

func (q *Queries) FindRoomsByIDs(ctx context.Context, db psqlbuilder.DBTX, ids []int32) ([]Room, error) {
	b := psqlbuilder.Select(roomColumns...).From("rooms").Where(squirrel.Eq{"id": ids}).OrderBy("id")
	return selectMany[Room](ctx, db, b)
}

func (q *Queries) FindRoomByID(ctx context.Context, db psqlbuilder.DBTX, id int32) (Room, error) {
	b := psqlbuilder.Select(roomColumns...).From("rooms").Where(squirrel.Eq{"id": id})
	return selectOne[Room](ctx, db, b)
}
