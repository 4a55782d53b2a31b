package commands

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/domain/user"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/jwt"
	"medoffice-booking/internal/pkg/password"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID      uuid.UUID
	Role        user.Role
	AccessToken string
	ExpiresIn   int64
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	hasher     *password.Hasher
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, hasher *password.Hasher, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		hasher:     hasher,
		jwtService: jwtService,
		clock:      clk,
	}
}

// Register creates a member account; administrators are provisioned out of band.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (uuid.UUID, error) {
	registration, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	hash, err := a.hasher.Hash(registration.Password().Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	newUser := user.NewUser(registration.Name(), registration.Email(), hash, user.RoleMember, a.clock.Now())

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Users().Create(ctx, tx.DB(), newUser)
		if createErr != nil {
			return createErr
		}
		userID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(ErrEmailTaken, errs.ErrConflict)
		}
		slog.Error("failed to register user", "error", err.Error())
		return uuid.Nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	slog.Info("user registered", "user_id", userID)
	return userID, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthorized)
	}

	snapshot, err := a.uow.CommandReads().UserByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// same answer as a wrong password so accounts cannot be enumerated
			return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthorized)
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	if err := a.hasher.Compare(snapshot.PasswordHash, credentials.Password().Value()); err != nil {
		return nil, errs.Mark(ErrInvalidCredentials, errs.ErrUnauthorized)
	}

	role, err := user.NewRole(snapshot.Role)
	if err != nil {
		return nil, errs.Mark(ErrAuthenticationFailed, errs.ErrUnauthorized)
	}

	token, err := a.jwtService.GenerateToken(snapshot.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      snapshot.ID,
		Role:        role,
		AccessToken: token,
		ExpiresIn:   int64(a.jwtService.TokenDuration().Seconds()),
	}, nil
}
