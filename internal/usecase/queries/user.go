package queries

import (
	"context"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errs.New("user not found")
	// the account's role changed after the token was issued
	ErrStaleRole = errs.New("token role no longer matches the account")
)

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID, tokenRole user.Role) (*AuthorizedUserView, error)
}

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

// GetCurrentUser resolves the caller behind a token. A token that outlived
// its account, or whose role was changed since, is treated as unauthenticated
// so a demoted admin has to sign in again.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID, tokenRole user.Role) (*AuthorizedUserView, error) {
	view, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrUserNotFound, errs.ErrUnauthorized)
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	if view.Role != tokenRole.String() {
		return nil, errs.Mark(ErrStaleRole, errs.ErrUnauthorized)
	}

	return view, nil
}
