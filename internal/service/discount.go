package service

import (
	"github.com/shopspring/decimal"

	"parking-garage/internal/model"
)

const (
	freeStayMinutes    = 30
	loyaltyMultiplier  = 0.95
	millisPerMinute    = 1000 * 60
	millisPerHour      = 1000 * 3600
	priceDecimalPlaces = 2
)

// DiscountEngine applies the garage's two price adjustments: the free
// short-stay rule and the recurring-customer loyalty discount.
type DiscountEngine struct{}

// NewDiscountEngine constructs a DiscountEngine.
func NewDiscountEngine() *DiscountEngine {
	return &DiscountEngine{}
}

// FreeIfShortStay zeroes the ticket price when the stay, rounded half-up to
// whole minutes, is 30 minutes or less. A stay of 30m29s is free; 30m30s
// rounds to 31 and is charged.
func (d *DiscountEngine) FreeIfShortStay(ticket *model.Ticket) {
	minutes := float64(ticket.ExitTime.Sub(ticket.EntryTime).Milliseconds()) / millisPerMinute
	rounded := decimal.NewFromFloat(minutes).Round(0).IntPart()
	if rounded <= freeStayMinutes {
		ticket.Price = 0.0
	}
}

// ApplyLoyaltyDiscount takes five percent off the current price. Applied
// after FreeIfShortStay, a free stay stays free.
func (d *DiscountEngine) ApplyLoyaltyDiscount(ticket *model.Ticket) {
	ticket.Price = roundMoney(ticket.Price * loyaltyMultiplier)
}

// roundMoney rounds to two decimal places, ties away from zero, matching
// decimal half-up rounding of monetary values.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(priceDecimalPlaces).InexactFloat64()
}
