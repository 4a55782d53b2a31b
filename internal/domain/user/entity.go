package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id            uuid.UUID
	name          Name
	email         Email
	passwordHash  string
	role          Role
	hasBookings   bool
	lastBookingAt *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(name Name, email Email, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructUser(
	id uuid.UUID,
	name Name,
	email Email,
	passwordHash string,
	role Role,
	hasBookings bool,
	lastBookingAt *time.Time,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:            id,
		name:          name,
		email:         email,
		passwordHash:  passwordHash,
		role:          role,
		hasBookings:   hasBookings,
		lastBookingAt: lastBookingAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (u *User) ID() uuid.UUID             { return u.id }
func (u *User) Name() Name                { return u.name }
func (u *User) Email() Email              { return u.email }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Role() Role                { return u.role }
func (u *User) HasBookings() bool         { return u.hasBookings }
func (u *User) LastBookingAt() *time.Time { return u.lastBookingAt }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }
