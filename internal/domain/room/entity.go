package room

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidName        = errors.New("room name must be 1-100 characters")
	ErrInvalidDescription = errors.New("room description must be at most 1000 characters")
	ErrUnknownPricingPlan = errors.New("unknown pricing plan")
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 1000

	PlanStandard = "standard"
)

// Room is reference data; only an administrator creates rooms.
type Room struct {
	id          int
	name        string
	description string
	pricingPlan string
	isAvailable bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(name, description, pricingPlan string, now time.Time) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrInvalidName
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return nil, ErrInvalidDescription
	}
	if pricingPlan == "" {
		pricingPlan = PlanStandard
	}
	if pricingPlan != PlanStandard {
		return nil, ErrUnknownPricingPlan
	}
	return &Room{
		name:        name,
		description: description,
		pricingPlan: pricingPlan,
		isAvailable: true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRoom(id int, name, description, pricingPlan string, isAvailable bool, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:          id,
		name:        name,
		description: description,
		pricingPlan: pricingPlan,
		isAvailable: isAvailable,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) ID() int              { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Description() string  { return r.description }
func (r *Room) PricingPlan() string  { return r.pricingPlan }
func (r *Room) IsAvailable() bool    { return r.isAvailable }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
