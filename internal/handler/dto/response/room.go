package response

import (
	"time"

	"medoffice-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PricingPlan string    `json:"pricing_plan"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRoomResponse struct {
	ID int `json:"id"`
}

func FromRoomViews(views []*queries.RoomView) ([]*RoomResponse, error) {
	res := make([]*RoomResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

type AvailabilityResponse struct {
	Month   string                  `json:"month"`
	RoomID  *int                    `json:"room_id,omitempty"`
	Entries []AvailabilityEntryItem `json:"entries"`
}

type AvailabilityEntryItem struct {
	Date   string   `json:"date"`
	RoomID int      `json:"room_id"`
	Slots  []string `json:"slots"`
	State  string   `json:"state"`
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	res := AvailabilityResponse{Entries: []AvailabilityEntryItem{}}
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if res.Entries == nil {
		res.Entries = []AvailabilityEntryItem{}
	}
	return &res, nil
}

type SlotResponse struct {
	Date      string `json:"date"`
	RoomID    int    `json:"room_id"`
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type MonthlyDatesResponse struct {
	RoomID int      `json:"room_id"`
	Slot   string   `json:"slot"`
	Start  string   `json:"start"`
	Dates  []string `json:"dates"`
	Count  int      `json:"count"`
}

func FromSlotView(v *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		Date:      v.Date,
		RoomID:    v.RoomID,
		Slot:      v.Slot,
		Available: v.Available,
	}
}

func FromMonthlyDatesView(v *queries.MonthlyDatesView) *MonthlyDatesResponse {
	return &MonthlyDatesResponse{
		RoomID: v.RoomID,
		Slot:   v.Slot,
		Start:  v.Start,
		Dates:  v.Dates,
		Count:  len(v.Dates),
	}
}
