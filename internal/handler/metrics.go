package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	arrivalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_arrivals_total",
		Help: "Vehicles admitted into the garage, by vehicle type.",
	}, []string{"vehicle_type"})

	departuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "garage_departures_total",
		Help: "Vehicles that left the garage, by customer kind.",
	}, []string{"customer"})
)
