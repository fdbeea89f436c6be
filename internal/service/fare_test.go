package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-garage/internal/model"
)

func newFareCalculator() *FareCalculator {
	return NewFareCalculator(model.RateTable{Car: 1.5, Bike: 1.0}, NewDiscountEngine())
}

func TestCalculateFare(t *testing.T) {
	calc := newFareCalculator()

	cases := []struct {
		name     string
		duration time.Duration
		vType    model.VehicleType
		want     float64
	}{
		{"45 minutes car", 45 * time.Minute, model.Car, 1.13}, // 0.75h * 1.5 = 1.125, half up
		{"45 minutes bike", 45 * time.Minute, model.Bike, 0.75},
		{"one hour car", time.Hour, model.Car, 1.5},
		{"one hour bike", time.Hour, model.Bike, 1.0},
		{"one day car", 24 * time.Hour, model.Car, 36.0},
		{"90 minutes car keeps fraction", 90 * time.Minute, model.Car, 2.25},
		{"twenty minutes is free", 20 * time.Minute, model.Car, 0.0},
		{"thirty minutes is free", 30 * time.Minute, model.Bike, 0.0},
		{"thirty minutes thirty seconds is charged", 30*time.Minute + 30*time.Second, model.Bike, 0.51},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ticket := ticketWithDuration(c.duration, 0)
			ticket.Spot.Type = c.vType

			err := calc.Calculate(ticket)

			require.NoError(t, err)
			assert.Equal(t, c.want, ticket.Price)
		})
	}
}

func TestCalculateFareIndependentRates(t *testing.T) {
	calc := NewFareCalculator(model.RateTable{Car: 3.0, Bike: 0.5}, NewDiscountEngine())

	car := ticketWithDuration(2*time.Hour, 0)
	car.Spot.Type = model.Car
	require.NoError(t, calc.Calculate(car))
	assert.Equal(t, 6.0, car.Price)

	bike := ticketWithDuration(2*time.Hour, 0)
	bike.Spot.Type = model.Bike
	require.NoError(t, calc.Calculate(bike))
	assert.Equal(t, 1.0, bike.Price)
}

func TestCalculateFareInvalidStates(t *testing.T) {
	calc := newFareCalculator()

	t.Run("nil exit time", func(t *testing.T) {
		ticket := ticketWithDuration(time.Hour, 0)
		ticket.ExitTime = nil
		assert.ErrorIs(t, calc.Calculate(ticket), ErrInvalidFareState)
	})

	t.Run("exit before entry", func(t *testing.T) {
		ticket := ticketWithDuration(time.Hour, 0)
		exit := ticket.EntryTime.Add(-time.Minute)
		ticket.ExitTime = &exit
		assert.ErrorIs(t, calc.Calculate(ticket), ErrInvalidFareState)
	})

	t.Run("nil spot", func(t *testing.T) {
		ticket := ticketWithDuration(time.Hour, 0)
		ticket.Spot = nil
		assert.ErrorIs(t, calc.Calculate(ticket), ErrInvalidFareState)
	})

	t.Run("unset vehicle type", func(t *testing.T) {
		ticket := ticketWithDuration(time.Hour, 0)
		ticket.Spot.Type = ""
		assert.ErrorIs(t, calc.Calculate(ticket), ErrInvalidFareState)
	})

	t.Run("unknown vehicle type", func(t *testing.T) {
		ticket := ticketWithDuration(time.Hour, 0)
		ticket.Spot.Type = model.VehicleType("TRUCK")
		assert.ErrorIs(t, calc.Calculate(ticket), ErrInvalidFareState)
	})
}

func TestCalculateFareDoesNotApplyLoyaltyDiscount(t *testing.T) {
	calc := newFareCalculator()

	ticket := ticketWithDuration(time.Hour, 0)
	ticket.Spot.Type = model.Bike

	require.NoError(t, calc.Calculate(ticket))
	assert.Equal(t, 1.0, ticket.Price, "loyalty discount is the lifecycle manager's call, not the calculator's")
}
