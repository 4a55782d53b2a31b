package booking

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type SlotPrices struct {
	Full Money
	Half Money
}

type PricingTable struct {
	Daily              SlotPrices
	Monthly            SlotPrices
	TaxRateBasisPoints int64
	SecurityDeposit    Money
}

func DefaultPricingTable() PricingTable {
	return PricingTable{
		Daily:              SlotPrices{Full: MoneyFromDollars(300), Half: MoneyFromDollars(160)},
		Monthly:            SlotPrices{Full: MoneyFromDollars(2000), Half: MoneyFromDollars(1200)},
		TaxRateBasisPoints: 350,
		SecurityDeposit:    MoneyFromDollars(250),
	}
}

func (p PricingTable) BasePrice(t BookingType, slot TimeSlot) (Money, error) {
	var prices SlotPrices
	switch t {
	case TypeDaily:
		prices = p.Daily
	case TypeMonthly:
		prices = p.Monthly
	default:
		return Money{}, ErrInvalidBookingType
	}
	switch {
	case slot == SlotFull:
		return prices.Full, nil
	case slot.IsHalfDay():
		return prices.Half, nil
	default:
		return Money{}, ErrInvalidTimeSlot
	}
}

func (p PricingTable) Validate() error {
	for _, m := range []Money{p.Daily.Full, p.Daily.Half, p.Monthly.Full, p.Monthly.Half, p.SecurityDeposit} {
		if m.Cents() < 0 {
			return fmt.Errorf("%w: %w", ErrInvalidPricing, ErrNegativePrice)
		}
	}
	if p.TaxRateBasisPoints < 0 || p.TaxRateBasisPoints > 10000 {
		return fmt.Errorf("%w: tax rate out of range", ErrInvalidPricing)
	}
	return nil
}

type pricingFile struct {
	TaxRate              *float64        `toml:"tax_rate"`
	SecurityDepositCents *int64          `toml:"security_deposit_cents"`
	Daily                *slotPricesFile `toml:"daily"`
	Monthly              *slotPricesFile `toml:"monthly"`
}

type slotPricesFile struct {
	FullCents *int64 `toml:"full_cents"`
	HalfCents *int64 `toml:"half_cents"`
}

// LoadPricingTable reads a TOML pricing file. Keys missing from the file keep
// their default values; an empty path returns the defaults.
func LoadPricingTable(path string) (PricingTable, error) {
	table := DefaultPricingTable()
	if path == "" {
		return table, nil
	}

	var f pricingFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return PricingTable{}, fmt.Errorf("%w: %w", ErrInvalidPricing, err)
	}

	if f.TaxRate != nil {
		table.TaxRateBasisPoints = RateToBasisPoints(*f.TaxRate)
	}
	if f.SecurityDepositCents != nil {
		table.SecurityDeposit = NewMoney(*f.SecurityDepositCents)
	}
	f.Daily.apply(&table.Daily)
	f.Monthly.apply(&table.Monthly)

	if err := table.Validate(); err != nil {
		return PricingTable{}, err
	}
	return table, nil
}

func (s *slotPricesFile) apply(dst *SlotPrices) {
	if s == nil {
		return
	}
	if s.FullCents != nil {
		dst.Full = NewMoney(*s.FullCents)
	}
	if s.HalfCents != nil {
		dst.Half = NewMoney(*s.HalfCents)
	}
}
