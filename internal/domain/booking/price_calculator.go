package booking

// Quote is a price breakdown. It is derived, never stored.
type Quote struct {
	BookingType     BookingType
	Lines           []QuoteLine
	Subtotal        Money
	Tax             Money
	SecurityDeposit Money
	Total           Money
}

type QuoteLine struct {
	RoomID       int
	Slot         TimeSlot
	DateCount    int
	BasePrice    Money
	Contribution Money
}

type PriceCalculator interface {
	Quote(selections []Selection, bookingType BookingType) (Quote, error)
}

type DefaultPriceCalculator struct {
	table PricingTable
}

func NewDefaultPriceCalculator(table PricingTable) *DefaultPriceCalculator {
	return &DefaultPriceCalculator{table: table}
}

func (pc *DefaultPriceCalculator) Table() PricingTable {
	return pc.table
}

// Quote prices daily plans per date and monthly plans as a flat fee per
// selection. The deposit is charged once per transaction when anything is
// selected.
func (pc *DefaultPriceCalculator) Quote(selections []Selection, bookingType BookingType) (Quote, error) {
	if !bookingType.IsValid() {
		return Quote{}, ErrInvalidBookingType
	}

	q := Quote{BookingType: bookingType}
	for _, sel := range selections {
		if !sel.HasDates() {
			continue
		}
		base, err := pc.table.BasePrice(bookingType, sel.Slot)
		if err != nil {
			return Quote{}, err
		}
		contribution := base
		if bookingType == TypeDaily {
			contribution = base.Times(len(sel.Dates))
		}
		q.Lines = append(q.Lines, QuoteLine{
			RoomID:       sel.RoomID,
			Slot:         sel.Slot,
			DateCount:    len(sel.Dates),
			BasePrice:    base,
			Contribution: contribution,
		})
		q.Subtotal = q.Subtotal.Add(contribution)
	}

	if len(q.Lines) > 0 {
		q.SecurityDeposit = pc.table.SecurityDeposit
	}
	q.Tax = q.Subtotal.ApplyRate(pc.table.TaxRateBasisPoints)
	q.Total = q.Subtotal.Add(q.Tax).Add(q.SecurityDeposit)
	return q, nil
}
