//go:build unit || e2e

package builder

import (
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserBuilder struct {
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	Role          string
	LastBookingAt *time.Time
	Now           time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		Role:         "member",
		Now:          time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	name, err := user.NewName(u.FirstName, u.LastName)
	if err != nil {
		return nil, err
	}

	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(name, email, u.PasswordHash, role, u.Now), nil
}

func (u *UserBuilder) BuildInfra() dbq.User {
	var lastBookingAt pgtype.Timestamptz
	if u.LastBookingAt != nil {
		lastBookingAt = pgtype.Timestamptz{Time: *u.LastBookingAt, Valid: true}
	}

	return dbq.User{
		ID:            uuid.New(),
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		HasBookings:   u.LastBookingAt != nil,
		LastBookingAt: lastBookingAt,
		CreatedAt:     u.Now,
		UpdatedAt:     u.Now,
	}
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:            uuid.New(),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		HasBookings:   u.LastBookingAt != nil,
		LastBookingAt: u.LastBookingAt,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithName(first, last string) *UserBuilder {
	u.FirstName = first
	u.LastName = last
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithLastBookingAt(at time.Time) *UserBuilder {
	u.LastBookingAt = &at
	return u
}
