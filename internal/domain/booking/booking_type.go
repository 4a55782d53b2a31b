package booking

import "strings"

type BookingType string

const (
	TypeDaily   BookingType = "daily"
	TypeMonthly BookingType = "monthly"
)

func ParseBookingType(s string) (BookingType, error) {
	t := BookingType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidBookingType
	}
	return t, nil
}

func (t BookingType) String() string {
	return string(t)
}

func (t BookingType) IsValid() bool {
	return t == TypeDaily || t == TypeMonthly
}
