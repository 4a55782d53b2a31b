package dbq

import (
	"context"
	"time"

	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var userColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "role",
	"has_bookings", "last_booking_at", "created_at", "updated_at",
}

type User struct {
	ID            uuid.UUID          `db:"id"`
	Email         string             `db:"email"`
	PasswordHash  string             `db:"password_hash"`
	FirstName     string             `db:"first_name"`
	LastName      string             `db:"last_name"`
	Role          string             `db:"role"`
	HasBookings   bool               `db:"has_bookings"`
	LastBookingAt pgtype.Timestamptz `db:"last_booking_at"`
	CreatedAt     time.Time          `db:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at"`
}

type CreateUserParams struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, db psqlbuilder.DBTX, arg CreateUserParams) (uuid.UUID, error) {
	b := psqlbuilder.Insert("users").
		Columns("id", "email", "password_hash", "first_name", "last_name", "role", "created_at", "updated_at").
		Values(arg.ID, arg.Email, arg.PasswordHash, arg.FirstName, arg.LastName, arg.Role, arg.CreatedAt, arg.CreatedAt).
		Suffix("RETURNING id")
	return returning[uuid.UUID](ctx, db, b)
}

func (q *Queries) MarkUserHasBookings(ctx context.Context, db psqlbuilder.DBTX, id uuid.UUID, at time.Time) (int64, error) {
	b := psqlbuilder.Update("users").
		Set("has_bookings", true).
		Set("last_booking_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})
	return exec(ctx, db, b)
}

func (q *Queries) FindUserByEmail(ctx context.Context, db psqlbuilder.DBTX, email string) (User, error) {
	b := psqlbuilder.Select(userColumns...).From("users").Where(squirrel.Eq{"email": email})
	return selectOne[User](ctx, db, b)
}

func (q *Queries) FindUserByID(ctx context.Context, db psqlbuilder.DBTX, id uuid.UUID) (User, error) {
	b := psqlbuilder.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id})
	return selectOne[User](ctx, db, b)
}
