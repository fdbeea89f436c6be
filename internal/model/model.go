// Package model defines the core domain types for the parking garage.
package model

import "time"

// VehicleType is the closed set of vehicle categories the garage accepts.
type VehicleType string

const (
	Car  VehicleType = "CAR"
	Bike VehicleType = "BIKE"
)

// Valid reports whether t is one of the known vehicle types.
func (t VehicleType) Valid() bool {
	return t == Car || t == Bike
}

// VehicleTypeFromSelection maps the console menu selection to a vehicle type.
// 1 is CAR, 2 is BIKE; anything else is rejected.
func VehicleTypeFromSelection(selection int) (VehicleType, bool) {
	switch selection {
	case 1:
		return Car, true
	case 2:
		return Bike, true
	default:
		return "", false
	}
}

// RateTable holds the hourly fare rate per vehicle type.
// Each rate is configurable independently of the other.
type RateTable struct {
	Car  float64
	Bike float64
}

// DefaultRates are the garage's standard hourly rates.
var DefaultRates = RateTable{Car: 1.5, Bike: 1.0}

// Rate returns the hourly rate for the given type. Adding a vehicle type
// means extending this switch, which the compiler keeps next to the constants.
func (r RateTable) Rate(t VehicleType) (float64, bool) {
	switch t {
	case Car:
		return r.Car, true
	case Bike:
		return r.Bike, true
	default:
		return 0, false
	}
}

// Spot is a numbered physical parking location. Available is false exactly
// while an open ticket references the spot.
type Spot struct {
	ID        int         `json:"id"`
	Type      VehicleType `json:"type"`
	Available bool        `json:"available"`
}

// Ticket is the billing record for one vehicle's occupancy of one spot.
// ExitTime is nil while the vehicle is still parked.
type Ticket struct {
	ID           int        `json:"id"`
	Spot         *Spot      `json:"spot"`
	Registration string     `json:"registration"`
	Price        float64    `json:"price"`
	EntryTime    time.Time  `json:"entry_time"`
	ExitTime     *time.Time `json:"exit_time,omitempty"`
}

// Open reports whether the ticket has not been closed yet.
func (t *Ticket) Open() bool {
	return t.ExitTime == nil
}

// ArrivalRequest is the payload for registering an incoming vehicle.
type ArrivalRequest struct {
	VehicleType  string `json:"vehicle_type"`
	Registration string `json:"registration"`
}

// DepartureRequest is the payload for processing an exiting vehicle.
type DepartureRequest struct {
	Registration string `json:"registration"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
