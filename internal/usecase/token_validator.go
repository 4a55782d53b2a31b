package usecase

import (
	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrTokenRole = errs.New("token carries an unknown role")

// TokenValidator resolves a bearer token to the caller's id and role.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return jwtTokenValidator{tokens: tokens}
}

func (v jwtTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", errs.Mark(err, errs.ErrUnauthorized)
	}

	// a role retired after the token was minted must stop working
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", errs.Mark(ErrTokenRole, errs.ErrUnauthorized)
	}

	return claims.UserID, role, nil
}
