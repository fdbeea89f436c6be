// Package service implements the parking garage's core workflow: spot
// allocation, the ticket lifecycle, and fare calculation with discounts.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"parking-garage/internal/model"
	"parking-garage/internal/repository"
)

// InputSource is the keyboard collaborator the console flows read from.
type InputSource interface {
	// ReadSelection returns the typed menu number, or -1 on unparseable input.
	ReadSelection() int

	// ReadRegistration returns the typed registration number, failing on
	// blank input.
	ReadRegistration() (string, error)
}

// Reporter is the one-way, fire-and-forget output collaborator.
type Reporter interface {
	Report(msg string)
	Reportf(format string, args ...any)
}

// Clock supplies the current time; injected so tests can pin it.
type Clock func() time.Time

// ArrivalResult summarises one arrival transaction. SpotPersisted and
// TicketPersisted expose secondary-write failures that do not abort the
// transaction, so callers can observe the inconsistency.
type ArrivalResult struct {
	TransactionID   uuid.UUID
	Ticket          *model.Ticket
	SpotPersisted   bool
	TicketPersisted bool
}

// DepartureResult summarises one departure transaction. SpotReleased is
// false when the availability commit failed after the ticket was closed.
type DepartureResult struct {
	TransactionID uuid.UUID
	Ticket        *model.Ticket
	Recurring     bool
	SpotReleased  bool
}

// ParkingService orchestrates arrivals and departures. It is constructed
// once per process and handed all of its collaborators.
type ParkingService struct {
	allocator *Allocator
	spots     repository.SpotStore
	tickets   repository.TicketStore
	fare      *FareCalculator
	discounts *DiscountEngine
	input     InputSource
	out       Reporter
	now       Clock
	log       zerolog.Logger
}

// NewParkingService constructs a ParkingService.
func NewParkingService(
	allocator *Allocator,
	spots repository.SpotStore,
	tickets repository.TicketStore,
	fare *FareCalculator,
	discounts *DiscountEngine,
	input InputSource,
	out Reporter,
	now Clock,
	log zerolog.Logger,
) *ParkingService {
	if now == nil {
		now = time.Now
	}
	return &ParkingService{
		allocator: allocator,
		spots:     spots,
		tickets:   tickets,
		fare:      fare,
		discounts: discounts,
		input:     input,
		out:       out,
		now:       now,
		log:       log,
	}
}

// RegisterArrival allocates a spot for the vehicle type and opens a ticket
// for the registration. Used by surfaces that collect both inputs up front.
func (s *ParkingService) RegisterArrival(ctx context.Context, t model.VehicleType, registration string) (*ArrivalResult, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, ErrInvalidRegistration
	}
	spot, err := s.allocator.Allocate(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.commitArrival(ctx, spot, registration), nil
}

// commitArrival marks the spot occupied and opens the ticket. Failures of
// either write are logged and recorded on the result but never abort the
// transaction, reproducing the garage's permissive persistence policy.
func (s *ParkingService) commitArrival(ctx context.Context, spot *model.Spot, registration string) *ArrivalResult {
	res := &ArrivalResult{
		TransactionID:   uuid.New(),
		SpotPersisted:   true,
		TicketPersisted: true,
	}

	spot.Available = false
	if err := s.spots.UpdateAvailability(ctx, spot); err != nil {
		res.SpotPersisted = false
		s.log.Error().Err(err).
			Stringer("txn", res.TransactionID).
			Int("spot", spot.ID).
			Msg("failed to persist spot unavailability")
	}

	ticket := &model.Ticket{
		Spot:         spot,
		Registration: registration,
		Price:        0,
		EntryTime:    s.now().UTC(),
		ExitTime:     nil,
	}
	if err := s.tickets.Save(ctx, ticket); err != nil {
		res.TicketPersisted = false
		s.log.Error().Err(err).
			Stringer("txn", res.TransactionID).
			Str("registration", registration).
			Msg("failed to persist ticket")
	}
	res.Ticket = ticket

	s.log.Info().
		Stringer("txn", res.TransactionID).
		Int("spot", spot.ID).
		Str("registration", registration).
		Time("entry_time", ticket.EntryTime).
		Msg("vehicle arrived")
	return res
}

// CompleteDeparture closes the registration's most recent open ticket:
// it stamps the exit time, prices the ticket, applies the loyalty discount
// for recurring customers, persists the closed ticket, and frees the spot.
func (s *ParkingService) CompleteDeparture(ctx context.Context, registration string) (*DepartureResult, error) {
	registration = strings.TrimSpace(registration)
	if registration == "" {
		return nil, ErrInvalidRegistration
	}

	ticket, err := s.tickets.FindOpenByRegistration(ctx, registration)
	if err != nil {
		if errors.Is(err, repository.ErrNoOpenTicket) {
			return nil, ErrNoOpenTicket
		}
		return nil, fmt.Errorf("find open ticket: %w", err)
	}

	exit := s.now().UTC()
	ticket.ExitTime = &exit

	if err := s.fare.Calculate(ticket); err != nil {
		return nil, err
	}

	res := &DepartureResult{
		TransactionID: uuid.New(),
		Ticket:        ticket,
		SpotReleased:  true,
	}

	recurring, err := s.tickets.IsRecurringCustomer(ctx, ticket)
	if err != nil {
		// Absence of the loyalty signal is never a transaction failure.
		recurring = false
		s.log.Error().Err(err).
			Stringer("txn", res.TransactionID).
			Str("registration", registration).
			Msg("failed to resolve recurring customer, no discount applied")
	}
	if recurring {
		s.discounts.ApplyLoyaltyDiscount(ticket)
	}
	res.Recurring = recurring

	if err := s.tickets.Update(ctx, ticket); err != nil {
		// The spot stays marked occupied: freeing it without a closed
		// ticket on record would hide the failed write.
		s.log.Error().Err(err).
			Stringer("txn", res.TransactionID).
			Int("ticket", ticket.ID).
			Msg("failed to persist closed ticket")
		return nil, fmt.Errorf("%w: %v", ErrTicketUpdateFailed, err)
	}

	ticket.Spot.Available = true
	if err := s.spots.UpdateAvailability(ctx, ticket.Spot); err != nil {
		res.SpotReleased = false
		s.log.Error().Err(err).
			Stringer("txn", res.TransactionID).
			Int("spot", ticket.Spot.ID).
			Msg("failed to persist spot release")
	}

	s.log.Info().
		Stringer("txn", res.TransactionID).
		Str("registration", registration).
		Float64("price", ticket.Price).
		Bool("recurring", recurring).
		Time("exit_time", exit).
		Msg("vehicle departed")
	return res, nil
}

// ProcessArrival drives the interactive arrival flow: ask the vehicle type,
// allocate, ask the registration, then commit. The registration is read
// before any storage write, so aborting on blank input leaves nothing
// half-persisted.
func (s *ParkingService) ProcessArrival(ctx context.Context) {
	s.out.Report("Please select vehicle type from menu")
	s.out.Report("1 CAR")
	s.out.Report("2 BIKE")
	t, ok := model.VehicleTypeFromSelection(s.input.ReadSelection())
	if !ok {
		s.out.Report("Incorrect input provided: please enter 1 or 2")
		return
	}

	spot, err := s.allocator.Allocate(ctx, t)
	if err != nil {
		s.out.Report("Parking slots might be full")
		s.log.Error().Err(err).Msg("unable to allocate parking spot")
		return
	}

	s.out.Report("Please type the vehicle registration number and press enter key")
	registration, err := s.input.ReadRegistration()
	if err != nil {
		s.out.Report("Unable to process incoming vehicle")
		s.log.Error().Err(err).Msg("invalid registration input")
		return
	}

	res := s.commitArrival(ctx, spot, registration)
	s.out.Report("Generated ticket and saved it")
	s.out.Reportf("Please park your vehicle in spot number: %d", spot.ID)
	s.out.Reportf("Recorded in-time for vehicle number %s is: %s",
		registration, res.Ticket.EntryTime.Format(time.RFC1123))
}

// ProcessDeparture drives the interactive departure flow.
func (s *ParkingService) ProcessDeparture(ctx context.Context) {
	s.out.Report("Please type the vehicle registration number and press enter key")
	registration, err := s.input.ReadRegistration()
	if err != nil {
		s.out.Report("Unable to process exiting vehicle")
		s.log.Error().Err(err).Msg("invalid registration input")
		return
	}

	res, err := s.CompleteDeparture(ctx, registration)
	switch {
	case err == nil:
		s.out.Reportf("Please pay the parking fare: %.2f", res.Ticket.Price)
		s.out.Reportf("Recorded out-time for vehicle number %s is: %s",
			registration, res.Ticket.ExitTime.Format(time.RFC1123))
	case errors.Is(err, ErrNoOpenTicket):
		s.out.Reportf("No open ticket found for vehicle number: %s", registration)
	case errors.Is(err, ErrTicketUpdateFailed):
		s.out.Report("Unable to update ticket information. Error occurred")
	default:
		s.out.Report("Unable to process exiting vehicle")
		s.log.Error().Err(err).Msg("unable to process exiting vehicle")
	}
}
