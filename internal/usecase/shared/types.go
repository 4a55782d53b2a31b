package shared

import (
	"time"

	"github.com/google/uuid"
)

type RoomSnapshot struct {
	ID          int
	Name        string
	IsAvailable bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Status      string
	RequestHash string
	BookingIDs  []uuid.UUID
	ExpiresAt   time.Time
}
