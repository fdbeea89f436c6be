package model

import (
	"testing"
	"time"
)

func TestVehicleTypeFromSelection(t *testing.T) {
	cases := []struct {
		selection int
		want      VehicleType
		ok        bool
	}{
		{1, Car, true},
		{2, Bike, true},
		{0, "", false},
		{3, "", false},
		{-1, "", false},
	}

	for _, c := range cases {
		got, ok := VehicleTypeFromSelection(c.selection)
		if got != c.want || ok != c.ok {
			t.Errorf("VehicleTypeFromSelection(%d) = (%q, %v), want (%q, %v)",
				c.selection, got, ok, c.want, c.ok)
		}
	}
}

func TestVehicleTypeValid(t *testing.T) {
	if !Car.Valid() || !Bike.Valid() {
		t.Error("Expected CAR and BIKE to be valid")
	}
	if VehicleType("TRUCK").Valid() {
		t.Error("Expected TRUCK to be invalid")
	}
	if VehicleType("").Valid() {
		t.Error("Expected empty type to be invalid")
	}
}

func TestRateTable(t *testing.T) {
	rates := RateTable{Car: 2.5, Bike: 0.75}

	if rate, ok := rates.Rate(Car); !ok || rate != 2.5 {
		t.Errorf("Rate(CAR) = (%v, %v), want (2.5, true)", rate, ok)
	}
	if rate, ok := rates.Rate(Bike); !ok || rate != 0.75 {
		t.Errorf("Rate(BIKE) = (%v, %v), want (0.75, true)", rate, ok)
	}
	if _, ok := rates.Rate(VehicleType("TRUCK")); ok {
		t.Error("Expected no rate for unknown type")
	}
}

func TestTicketOpen(t *testing.T) {
	ticket := &Ticket{EntryTime: time.Now()}
	if !ticket.Open() {
		t.Error("Expected ticket without exit time to be open")
	}

	exit := time.Now()
	ticket.ExitTime = &exit
	if ticket.Open() {
		t.Error("Expected ticket with exit time to be closed")
	}
}
