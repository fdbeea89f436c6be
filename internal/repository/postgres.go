package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parking-garage/internal/model"
)

// PostgresSpotStore persists spots in the parking_spots table.
type PostgresSpotStore struct {
	db *pgxpool.Pool
}

// NewPostgresSpotStore constructs a PostgresSpotStore.
func NewPostgresSpotStore(db *pgxpool.Pool) *PostgresSpotStore {
	return &PostgresSpotStore{db: db}
}

// NextAvailable returns the lowest free spot number for the type, or 0.
func (r *PostgresSpotStore) NextAvailable(ctx context.Context, t model.VehicleType) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MIN(spot_number), 0)
		 FROM parking_spots
		 WHERE type = $1 AND available = true`,
		string(t),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next available spot: %w", err)
	}
	return n, nil
}

// UpdateAvailability persists the spot's Available flag.
func (r *PostgresSpotStore) UpdateAvailability(ctx context.Context, spot *model.Spot) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE parking_spots SET available = $2 WHERE spot_number = $1`,
		spot.ID, spot.Available,
	)
	if err != nil {
		return fmt.Errorf("update spot availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update spot availability: spot %d not found", spot.ID)
	}
	return nil
}

// ClaimNextAvailable atomically claims the lowest free spot for the type.
// SKIP LOCKED keeps two concurrent claims from racing on the same row.
func (r *PostgresSpotStore) ClaimNextAvailable(ctx context.Context, t model.VehicleType) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`UPDATE parking_spots SET available = false
		 WHERE spot_number = (
			SELECT spot_number FROM parking_spots
			WHERE type = $1 AND available = true
			ORDER BY spot_number
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		 )
		 RETURNING spot_number`,
		string(t),
	).Scan(&n)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("claim next available spot: %w", err)
	}
	return n, nil
}

// PostgresTicketStore persists tickets in the tickets table.
type PostgresTicketStore struct {
	db *pgxpool.Pool
}

// NewPostgresTicketStore constructs a PostgresTicketStore.
func NewPostgresTicketStore(db *pgxpool.Pool) *PostgresTicketStore {
	return &PostgresTicketStore{db: db}
}

// Save inserts a new ticket and writes the generated ID back into it.
func (r *PostgresTicketStore) Save(ctx context.Context, ticket *model.Ticket) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO tickets (spot_number, registration, price, entry_time, exit_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		ticket.Spot.ID, ticket.Registration, ticket.Price, ticket.EntryTime, ticket.ExitTime,
	).Scan(&ticket.ID)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

// FindOpenByRegistration returns the most recently opened ticket with no exit
// time for the registration, joined with its spot, or ErrNoOpenTicket.
func (r *PostgresTicketStore) FindOpenByRegistration(ctx context.Context, registration string) (*model.Ticket, error) {
	var (
		t    model.Ticket
		spot model.Spot
	)
	err := r.db.QueryRow(ctx,
		`SELECT t.id, t.registration, t.price, t.entry_time, t.exit_time,
		        p.spot_number, p.type, p.available
		 FROM tickets t
		 JOIN parking_spots p ON p.spot_number = t.spot_number
		 WHERE t.registration = $1 AND t.exit_time IS NULL
		 ORDER BY t.entry_time DESC
		 LIMIT 1`,
		registration,
	).Scan(&t.ID, &t.Registration, &t.Price, &t.EntryTime, &t.ExitTime,
		&spot.ID, &spot.Type, &spot.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoOpenTicket
		}
		return nil, fmt.Errorf("find open ticket: %w", err)
	}
	t.Spot = &spot
	return &t, nil
}

// Update persists the ticket's price and exit time by ID.
func (r *PostgresTicketStore) Update(ctx context.Context, ticket *model.Ticket) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tickets SET price = $1, exit_time = $2 WHERE id = $3`,
		ticket.Price, ticket.ExitTime, ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("update ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update ticket: ticket %d not found", ticket.ID)
	}
	return nil
}

// IsRecurringCustomer counts the registration's closed tickets in the
// calendar month before the ticket's entry time.
func (r *PostgresTicketStore) IsRecurringCustomer(ctx context.Context, ticket *model.Ticket) (bool, error) {
	start, end := previousMonthWindow(ticket.EntryTime)

	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tickets
		 WHERE registration = $1
		   AND exit_time IS NOT NULL
		   AND exit_time >= $2 AND exit_time < $3`,
		ticket.Registration, start, end,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count last month tickets: %w", err)
	}
	return count > 10, nil
}
