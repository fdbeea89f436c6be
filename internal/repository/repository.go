// Package repository implements persistence for parking spots and tickets.
// The storage contract is expressed as interfaces so the service layer can be
// exercised against either PostgreSQL or the in-memory implementation.
package repository

import (
	"context"
	"errors"
	"time"

	"parking-garage/internal/model"
)

// ErrNoOpenTicket is returned when a registration has no open ticket.
var ErrNoOpenTicket = errors.New("no open ticket for registration")

// SpotStore is the storage collaborator for parking spots.
type SpotStore interface {
	// NextAvailable returns the lowest-numbered free spot for the given
	// vehicle type. A result of zero or less means no spot is free.
	NextAvailable(ctx context.Context, t model.VehicleType) (int, error)

	// UpdateAvailability persists the spot's Available flag.
	UpdateAvailability(ctx context.Context, spot *model.Spot) error

	// ClaimNextAvailable atomically finds and marks occupied the
	// lowest-numbered free spot for the given type, returning its number,
	// or zero when the garage is full for that type. Implementations must
	// make the find-and-claim safe against concurrent callers.
	ClaimNextAvailable(ctx context.Context, t model.VehicleType) (int, error)
}

// TicketStore is the storage collaborator for tickets.
type TicketStore interface {
	// Save inserts a new ticket and writes the generated ID back into it.
	Save(ctx context.Context, ticket *model.Ticket) error

	// FindOpenByRegistration returns the most recently opened ticket with
	// no exit time for the registration, or ErrNoOpenTicket.
	FindOpenByRegistration(ctx context.Context, registration string) (*model.Ticket, error)

	// Update persists the ticket's price and exit time by ID.
	Update(ctx context.Context, ticket *model.Ticket) error

	// IsRecurringCustomer reports whether the ticket's registration closed
	// more than ten tickets during the calendar month preceding the
	// ticket's entry time.
	IsRecurringCustomer(ctx context.Context, ticket *model.Ticket) (bool, error)
}

// previousMonthWindow returns the half-open interval [start, end) covering
// the calendar month before the one containing ref.
func previousMonthWindow(ref time.Time) (time.Time, time.Time) {
	end := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	start := end.AddDate(0, -1, 0)
	return start, end
}
