package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-garage/internal/model"
)

func TestAllocate(t *testing.T) {
	t.Run("returns lowest free spot", func(t *testing.T) {
		spots := &fakeSpotStore{next: 2}
		allocator := NewAllocator(spots)

		spot, err := allocator.Allocate(context.Background(), model.Car)

		require.NoError(t, err)
		assert.Equal(t, 2, spot.ID)
		assert.Equal(t, model.Car, spot.Type)
		assert.True(t, spot.Available, "claim is provisional until the caller commits")
		assert.Empty(t, spots.updates, "allocate must not mutate storage")
	})

	t.Run("invalid vehicle type", func(t *testing.T) {
		allocator := NewAllocator(&fakeSpotStore{next: 1})

		_, err := allocator.Allocate(context.Background(), model.VehicleType("TRUCK"))

		assert.ErrorIs(t, err, ErrInvalidVehicleType)
	})

	t.Run("zero index means full", func(t *testing.T) {
		allocator := NewAllocator(&fakeSpotStore{next: 0})

		_, err := allocator.Allocate(context.Background(), model.Bike)

		assert.ErrorIs(t, err, ErrNoSpotAvailable)
	})

	t.Run("negative index means full", func(t *testing.T) {
		allocator := NewAllocator(&fakeSpotStore{next: -1})

		_, err := allocator.Allocate(context.Background(), model.Car)

		assert.ErrorIs(t, err, ErrNoSpotAvailable)
	})

	t.Run("lookup failure means full", func(t *testing.T) {
		allocator := NewAllocator(&fakeSpotStore{nextErr: errors.New("db down")})

		_, err := allocator.Allocate(context.Background(), model.Car)

		assert.ErrorIs(t, err, ErrNoSpotAvailable)
	})
}
