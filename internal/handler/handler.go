// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the parking service.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"parking-garage/internal/model"
	"parking-garage/internal/service"
)

// GarageHandler holds all HTTP handlers for the parking garage API.
type GarageHandler struct {
	svc *service.ParkingService
}

// NewGarageHandler constructs a GarageHandler.
func NewGarageHandler(svc *service.ParkingService) *GarageHandler {
	return &GarageHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ArrivalResponse is the payload returned for a registered arrival.
type ArrivalResponse struct {
	TransactionID string    `json:"transaction_id"`
	SpotNumber    int       `json:"spot_number"`
	Registration  string    `json:"registration"`
	EntryTime     time.Time `json:"entry_time"`
	Persisted     bool      `json:"persisted"`
}

// DepartureResponse is the payload returned for a completed departure.
type DepartureResponse struct {
	TransactionID string    `json:"transaction_id"`
	Registration  string    `json:"registration"`
	Price         float64   `json:"price"`
	Recurring     bool      `json:"recurring_customer"`
	ExitTime      time.Time `json:"exit_time"`
	SpotReleased  bool      `json:"spot_released"`
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// RegisterArrival handles POST /garage/arrivals
// Allocates a spot for the vehicle and opens a ticket.
func (h *GarageHandler) RegisterArrival(w http.ResponseWriter, r *http.Request) {
	var req model.ArrivalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t := model.VehicleType(strings.ToUpper(strings.TrimSpace(req.VehicleType)))
	res, err := h.svc.RegisterArrival(r.Context(), t, req.Registration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVehicleType):
			writeError(w, http.StatusBadRequest, "vehicle type must be CAR or BIKE")
		case errors.Is(err, service.ErrInvalidRegistration):
			writeError(w, http.StatusBadRequest, "registration number is required")
		case errors.Is(err, service.ErrNoSpotAvailable):
			writeError(w, http.StatusConflict, "parking is full for this vehicle type")
		default:
			writeError(w, http.StatusInternalServerError, "failed to register arrival")
		}
		return
	}

	arrivalsTotal.WithLabelValues(string(t)).Inc()
	writeJSON(w, http.StatusCreated, ArrivalResponse{
		TransactionID: res.TransactionID.String(),
		SpotNumber:    res.Ticket.Spot.ID,
		Registration:  res.Ticket.Registration,
		EntryTime:     res.Ticket.EntryTime,
		Persisted:     res.SpotPersisted && res.TicketPersisted,
	})
}

// CompleteDeparture handles POST /garage/departures
// Closes the registration's open ticket and reports the fare.
func (h *GarageHandler) CompleteDeparture(w http.ResponseWriter, r *http.Request) {
	var req model.DepartureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.svc.CompleteDeparture(r.Context(), req.Registration)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRegistration):
			writeError(w, http.StatusBadRequest, "registration number is required")
		case errors.Is(err, service.ErrNoOpenTicket):
			writeError(w, http.StatusNotFound, "no open ticket for this registration")
		case errors.Is(err, service.ErrInvalidFareState):
			writeError(w, http.StatusUnprocessableEntity, "ticket cannot be priced")
		case errors.Is(err, service.ErrTicketUpdateFailed):
			writeError(w, http.StatusBadGateway, "unable to update ticket")
		default:
			writeError(w, http.StatusInternalServerError, "failed to complete departure")
		}
		return
	}

	departuresTotal.WithLabelValues(departureLabel(res.Recurring)).Inc()
	writeJSON(w, http.StatusOK, DepartureResponse{
		TransactionID: res.TransactionID.String(),
		Registration:  res.Ticket.Registration,
		Price:         res.Ticket.Price,
		Recurring:     res.Recurring,
		ExitTime:      *res.Ticket.ExitTime,
		SpotReleased:  res.SpotReleased,
	})
}

func departureLabel(recurring bool) string {
	if recurring {
		return "recurring"
	}
	return "standard"
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
