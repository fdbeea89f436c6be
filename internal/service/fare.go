package service

import (
	"fmt"

	"parking-garage/internal/model"
)

// FareCalculator computes a ticket's price from its parked duration and the
// vehicle type's hourly rate.
type FareCalculator struct {
	rates     model.RateTable
	discounts *DiscountEngine
}

// NewFareCalculator constructs a FareCalculator.
func NewFareCalculator(rates model.RateTable, discounts *DiscountEngine) *FareCalculator {
	return &FareCalculator{rates: rates, discounts: discounts}
}

// Calculate sets the ticket's price: parked hours (real division, never
// truncated) times the hourly rate, rounded half-up to two decimals, then
// unconditionally subject to the free short-stay rule. The loyalty discount
// is not applied here; the lifecycle manager invokes it separately for
// recurring customers.
func (c *FareCalculator) Calculate(ticket *model.Ticket) error {
	if ticket.ExitTime == nil {
		return fmt.Errorf("%w: exit time is not set", ErrInvalidFareState)
	}
	if ticket.ExitTime.Before(ticket.EntryTime) {
		return fmt.Errorf("%w: exit time %s is before entry time", ErrInvalidFareState, ticket.ExitTime)
	}
	if ticket.Spot == nil || ticket.Spot.Type == "" {
		return fmt.Errorf("%w: vehicle type is null", ErrInvalidFareState)
	}
	rate, ok := c.rates.Rate(ticket.Spot.Type)
	if !ok {
		return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidFareState, ticket.Spot.Type)
	}

	hours := float64(ticket.ExitTime.Sub(ticket.EntryTime).Milliseconds()) / millisPerHour
	ticket.Price = roundMoney(hours * rate)

	c.discounts.FreeIfShortStay(ticket)
	return nil
}
