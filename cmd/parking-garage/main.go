// cmd/parking-garage is the operator console application.
// It wires together all layers and runs the interactive menu.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"parking-garage/internal/config"
	"parking-garage/internal/database"
	"parking-garage/internal/logging"
	"parking-garage/internal/model"
	"parking-garage/internal/repository"
	"parking-garage/internal/service"
	"parking-garage/internal/shell"
)

func main() {
	cfg := config.Load()
	logging.Init(cfg.Dev)
	log := logging.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		spots   repository.SpotStore
		tickets repository.TicketStore
	)
	switch cfg.Storage {
	case "memory":
		spots = repository.NewMemorySpotStore(cfg.CarSpots, cfg.BikeSpots)
		tickets = repository.NewMemoryTicketStore()
		log.Info().Int("car_spots", cfg.CarSpots).Int("bike_spots", cfg.BikeSpots).
			Msg("using in-memory storage")
	default:
		pool, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("database")
		}
		defer pool.Close()
		spots = repository.NewPostgresSpotStore(pool)
		tickets = repository.NewPostgresTicketStore(pool)
		log.Info().Msg("connected to postgres")
	}

	rates := model.RateTable{Car: cfg.CarRate, Bike: cfg.BikeRate}
	discounts := service.NewDiscountEngine()
	fare := service.NewFareCalculator(rates, discounts)
	allocator := service.NewAllocator(spots)

	input := shell.NewInputReader(os.Stdin)
	out := shell.NewReporter(os.Stdout)
	svc := service.NewParkingService(
		allocator, spots, tickets, fare, discounts, input, out, nil, log)

	shell.New(svc, input, out, log).Run(ctx)
}
