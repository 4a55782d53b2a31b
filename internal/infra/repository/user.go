package repository

import (
	"context"
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db psqlbuilder.DBTX, arg dbq.CreateUserParams) (uuid.UUID, error)
	MarkUserHasBookings(ctx context.Context, db psqlbuilder.DBTX, id uuid.UUID, at time.Time) (int64, error)
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries UserWriteQueries) *UserRepository {
	return &UserRepository{queries: queries}
}

func (r *UserRepository) Create(ctx context.Context, tx psqlbuilder.DBTX, u *user.User) (uuid.UUID, error) {
	params := dbq.CreateUserParams{
		ID:           u.ID(),
		Email:        u.Email().Value(),
		PasswordHash: u.PasswordHash(),
		FirstName:    u.Name().First(),
		LastName:     u.Name().Last(),
		Role:         u.Role().String(),
		CreatedAt:    u.CreatedAt(),
	}

	id, err := r.queries.CreateUser(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) MarkHasBookings(ctx context.Context, tx psqlbuilder.DBTX, userID uuid.UUID, at time.Time) error {
	n, err := r.queries.MarkUserHasBookings(ctx, tx, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to update user booking flags", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
