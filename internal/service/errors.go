package service

import "errors"

// ErrInvalidVehicleType is returned for a vehicle type outside the closed set.
var ErrInvalidVehicleType = errors.New("invalid vehicle type")

// ErrNoSpotAvailable is returned when the garage has no free spot of the
// requested type.
var ErrNoSpotAvailable = errors.New("no parking spot available")

// ErrInvalidRegistration is returned for a blank registration number.
var ErrInvalidRegistration = errors.New("invalid registration number")

// ErrNoOpenTicket is returned on departure when the registration has no
// open ticket.
var ErrNoOpenTicket = errors.New("no open ticket for registration")

// ErrInvalidFareState is returned when a ticket cannot be priced: missing or
// inverted exit time, or a spot with no recognized vehicle type.
var ErrInvalidFareState = errors.New("invalid fare state")

// ErrTicketUpdateFailed is returned when persisting the closed ticket fails.
// The spot is deliberately left marked occupied in that case.
var ErrTicketUpdateFailed = errors.New("unable to update ticket")
