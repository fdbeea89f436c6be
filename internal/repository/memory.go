package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"parking-garage/internal/model"
)

// MemorySpotStore keeps spots in memory. Used by tests and by the
// "memory" storage mode for running the garage without PostgreSQL.
type MemorySpotStore struct {
	mu    sync.Mutex
	spots map[int]*model.Spot
}

// NewMemorySpotStore provisions carSpots CAR spots followed by bikeSpots
// BIKE spots, all available, with dense spot numbers starting at 1.
func NewMemorySpotStore(carSpots, bikeSpots int) *MemorySpotStore {
	spots := make(map[int]*model.Spot, carSpots+bikeSpots)
	n := 0
	for i := 0; i < carSpots; i++ {
		n++
		spots[n] = &model.Spot{ID: n, Type: model.Car, Available: true}
	}
	for i := 0; i < bikeSpots; i++ {
		n++
		spots[n] = &model.Spot{ID: n, Type: model.Bike, Available: true}
	}
	return &MemorySpotStore{spots: spots}
}

// NextAvailable returns the lowest free spot number for the type, or 0.
func (r *MemorySpotStore) NextAvailable(_ context.Context, t model.VehicleType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lowestFree(t), nil
}

// UpdateAvailability persists the spot's Available flag.
func (r *MemorySpotStore) UpdateAvailability(_ context.Context, spot *model.Spot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.spots[spot.ID]; ok {
		s.Available = spot.Available
	}
	return nil
}

// ClaimNextAvailable finds and marks occupied the lowest free spot under
// a single lock, so concurrent claims cannot take the same spot.
func (r *MemorySpotStore) ClaimNextAvailable(_ context.Context, t model.VehicleType) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.lowestFree(t)
	if n > 0 {
		r.spots[n].Available = false
	}
	return n, nil
}

func (r *MemorySpotStore) lowestFree(t model.VehicleType) int {
	numbers := make([]int, 0, len(r.spots))
	for n := range r.spots {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		if s := r.spots[n]; s.Type == t && s.Available {
			return n
		}
	}
	return 0
}

// MemoryTicketStore keeps tickets in memory.
type MemoryTicketStore struct {
	mu      sync.Mutex
	nextID  int
	tickets map[int]model.Ticket
}

// NewMemoryTicketStore constructs an empty MemoryTicketStore.
func NewMemoryTicketStore() *MemoryTicketStore {
	return &MemoryTicketStore{nextID: 1, tickets: make(map[int]model.Ticket)}
}

// Save inserts a new ticket and writes the generated ID back into it.
func (r *MemoryTicketStore) Save(_ context.Context, ticket *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = r.nextID
	r.nextID++
	r.tickets[ticket.ID] = snapshot(ticket)
	return nil
}

// FindOpenByRegistration returns the most recently opened ticket with no
// exit time for the registration, or ErrNoOpenTicket.
func (r *MemoryTicketStore) FindOpenByRegistration(_ context.Context, registration string) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var found *model.Ticket
	for id := range r.tickets {
		t := r.tickets[id]
		if t.Registration != registration || t.ExitTime != nil {
			continue
		}
		if found == nil || t.EntryTime.After(found.EntryTime) {
			copied := snapshot(&t)
			found = &copied
		}
	}
	if found == nil {
		return nil, ErrNoOpenTicket
	}
	return found, nil
}

// Update persists the ticket's price and exit time by ID.
func (r *MemoryTicketStore) Update(_ context.Context, ticket *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return fmt.Errorf("update ticket: ticket %d not found", ticket.ID)
	}
	stored.Price = ticket.Price
	stored.ExitTime = ticket.ExitTime
	r.tickets[ticket.ID] = stored
	return nil
}

// IsRecurringCustomer counts the registration's closed tickets in the
// calendar month before the ticket's entry time.
func (r *MemoryTicketStore) IsRecurringCustomer(_ context.Context, ticket *model.Ticket) (bool, error) {
	start, end := previousMonthWindow(ticket.EntryTime)

	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.tickets {
		if t.Registration != ticket.Registration || t.ExitTime == nil {
			continue
		}
		if !t.ExitTime.Before(start) && t.ExitTime.Before(end) {
			count++
		}
	}
	return count > 10, nil
}

// snapshot copies a ticket, including its spot, so stored state cannot be
// mutated through the caller's pointer.
func snapshot(t *model.Ticket) model.Ticket {
	copied := *t
	if t.Spot != nil {
		spot := *t.Spot
		copied.Spot = &spot
	}
	return copied
}
