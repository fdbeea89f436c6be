// cmd/parking-api exposes the parking garage over HTTP.
// It wires together all layers and starts the API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parking-garage/internal/config"
	"parking-garage/internal/database"
	"parking-garage/internal/handler"
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

	ctx := context.Background()

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

	// The API never drives the console flows; the collaborators are wired
	// anyway so the service has no nil fields.
	input := shell.NewInputReader(os.Stdin)
	out := shell.NewReporter(os.Stdout)
	svc := service.NewParkingService(
		allocator, spots, tickets, fare, discounts, input, out, nil, log)
	garageHandler := handler.NewGarageHandler(svc)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS)

	r.Get("/health", handler.HealthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/garage", func(r chi.Router) {
		r.Post("/arrivals", garageHandler.RegisterArrival)
		r.Post("/departures", garageHandler.CompleteDeparture)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
