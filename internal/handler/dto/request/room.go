package request

import (
	"time"

	"medoffice-booking/internal/domain/room"
	"medoffice-booking/internal/pkg/patch"
)

type CreateRoomRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=1000"`
	PricingPlan *string `json:"pricing_plan,omitempty"`
}

func (r CreateRoomRequest) ToDomain(now time.Time) (*room.Room, error) {
	return room.NewRoom(
		r.Name,
		patch.String(r.Description, ""),
		patch.String(r.PricingPlan, room.PlanStandard),
		now,
	)
}
