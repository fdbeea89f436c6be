package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parking-garage/internal/model"
)

func ticketWithDuration(d time.Duration, price float64) *model.Ticket {
	entry := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(d)
	return &model.Ticket{
		Spot:         &model.Spot{ID: 1, Type: model.Car},
		Registration: "ABCDEF",
		Price:        price,
		EntryTime:    entry,
		ExitTime:     &exit,
	}
}

func TestFreeIfShortStay(t *testing.T) {
	engine := NewDiscountEngine()

	cases := []struct {
		name     string
		duration time.Duration
		price    float64
		want     float64
	}{
		{"well under threshold", 20 * time.Minute, 0.5, 0.0},
		{"exactly thirty minutes", 30 * time.Minute, 0.75, 0.0},
		{"rounds down to thirty", 30*time.Minute + 29*time.Second, 0.76, 0.0},
		{"rounds up to thirty-one", 30*time.Minute + 30*time.Second, 0.76, 0.76},
		{"over threshold", 45 * time.Minute, 1.13, 1.13},
		{"zero duration", 0, 0.0, 0.0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ticket := ticketWithDuration(c.duration, c.price)
			engine.FreeIfShortStay(ticket)
			assert.Equal(t, c.want, ticket.Price)
		})
	}
}

func TestApplyLoyaltyDiscount(t *testing.T) {
	engine := NewDiscountEngine()

	cases := []struct {
		name  string
		price float64
		want  float64
	}{
		{"one hour bike", 1.00, 0.95},
		{"free stay stays free", 0.0, 0.0},
		{"fraction dropped", 1.13, 1.07}, // 1.0735 rounds to 1.07
		{"two hour car", 2.00, 1.90},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ticket := ticketWithDuration(2*time.Hour, c.price)
			engine.ApplyLoyaltyDiscount(ticket)
			assert.Equal(t, c.want, ticket.Price)
		})
	}
}

func TestApplyLoyaltyDiscountAfterShortStayKeepsZero(t *testing.T) {
	engine := NewDiscountEngine()
	ticket := ticketWithDuration(25*time.Minute, 0.63)

	engine.FreeIfShortStay(ticket)
	engine.ApplyLoyaltyDiscount(ticket)

	assert.Equal(t, 0.0, ticket.Price)
}
