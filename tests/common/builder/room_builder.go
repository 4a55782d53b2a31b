//go:build unit || e2e

package builder

import (
	"time"

	"medoffice-booking/internal/domain/room"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/usecase/queries"
)

type RoomBuilder struct {
	ID          int
	Name        string
	Description string
	PricingPlan string
	IsAvailable bool
	Now         time.Time
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:          1,
		Name:        "Room 1",
		Description: "Consultation room with exam table",
		PricingPlan: room.PlanStandard,
		IsAvailable: true,
		Now:         time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

func (r *RoomBuilder) WithID(id int) *RoomBuilder {
	r.ID = id
	return r
}

func (r *RoomBuilder) WithName(name string) *RoomBuilder {
	r.Name = name
	return r
}

func (r *RoomBuilder) AsUnavailable() *RoomBuilder {
	r.IsAvailable = false
	return r
}

func (r *RoomBuilder) BuildDomain() (*room.Room, error) {
	return room.NewRoom(r.Name, r.Description, r.PricingPlan, r.Now)
}

func (r *RoomBuilder) BuildInfra() dbq.Room {
	return dbq.Room{
		ID:          int32(r.ID),
		Name:        r.Name,
		Description: r.Description,
		PricingPlan: r.PricingPlan,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.Now,
		UpdatedAt:   r.Now,
	}
}

func (r *RoomBuilder) BuildReadModel() *queries.RoomView {
	return &queries.RoomView{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PricingPlan: r.PricingPlan,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.Now,
	}
}
