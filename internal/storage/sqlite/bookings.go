package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
)

type BookingsRepo struct {
	db *sql.DB
}

func NewBookingsRepo(db *sql.DB) *BookingsRepo {
	return &BookingsRepo{db: db}
}

func (r *BookingsRepo) SaveBooking(ctx context.Context, b core.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO bookings (id, user_id, username, full_name, name, service, topic, contact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.UserID, b.Username, b.FullName,
		b.Payload.Name, b.Payload.Service, b.Payload.Topic, b.Payload.Contact,
		b.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// ListBookings returns the newest bookings first.
func (r *BookingsRepo) ListBookings(ctx context.Context, limit int) ([]core.Booking, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username, full_name, name, service, topic, contact, created_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var out []core.Booking
	for rows.Next() {
		var b core.Booking
		err := rows.Scan(&b.ID, &b.UserID, &b.Username, &b.FullName,
			&b.Payload.Name, &b.Payload.Service, &b.Payload.Topic, &b.Payload.Contact,
			&b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Payload.Confirmed = true
		out = append(out, b)
	}
	return out, rows.Err()
}
