package readstore

import (
	"context"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/pkg/pgconv"
	"medoffice-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadQueries interface {
	FindUserByID(ctx context.Context, db psqlbuilder.DBTX, id uuid.UUID) (dbq.User, error)
	FindUserByEmail(ctx context.Context, db psqlbuilder.DBTX, email string) (dbq.User, error)
}

type UserReadStore struct {
	queries UserReadQueries
	db      psqlbuilder.DBTX
}

func NewUserReadStore(queries UserReadQueries, db psqlbuilder.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.queries.FindUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err, infra.KindDBFailure)
	}

	return toAuthorizedUserView(row), nil
}

// FindByEmail also returns the stored password hash for credential checks.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.queries.FindUserByEmail(ctx, r.db, email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err, infra.KindDBFailure)
	}

	return toAuthorizedUserView(row), row.PasswordHash, nil
}

func toAuthorizedUserView(row dbq.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:            row.ID,
		Email:         row.Email,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Role:          row.Role,
		HasBookings:   row.HasBookings,
		LastBookingAt: pgconv.TimePtrFromPgtype(row.LastBookingAt),
	}
}
