package service

import (
	"context"

	"parking-garage/internal/model"
	"parking-garage/internal/repository"
)

// Allocator finds a free spot for a requested vehicle type. It never mutates
// storage itself; committing the unavailability is the caller's step, so the
// find-then-commit protocol stays explicit.
type Allocator struct {
	spots repository.SpotStore
}

// NewAllocator constructs an Allocator.
func NewAllocator(spots repository.SpotStore) *Allocator {
	return &Allocator{spots: spots}
}

// Allocate returns the lowest-numbered free spot for the vehicle type,
// flagged available until the caller commits the claim. An unknown type
// yields ErrInvalidVehicleType; a full garage or a lookup failure yields
// ErrNoSpotAvailable.
func (a *Allocator) Allocate(ctx context.Context, t model.VehicleType) (*model.Spot, error) {
	if !t.Valid() {
		return nil, ErrInvalidVehicleType
	}
	n, err := a.spots.NextAvailable(ctx, t)
	if err != nil || n <= 0 {
		return nil, ErrNoSpotAvailable
	}
	return &model.Spot{ID: n, Type: t, Available: true}, nil
}
