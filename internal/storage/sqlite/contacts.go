package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

func (r *ContactsRepo) GetContact(ctx context.Context, userID string) (*core.ContactRecord, error) {
	var rec core.ContactRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT name, phone, updated_at FROM contacts WHERE user_id = ?`, userID,
	).Scan(&rec.Name, &rec.Phone, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return &rec, nil
}

func (r *ContactsRepo) SaveContact(ctx context.Context, userID string, rec core.ContactRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO contacts (user_id, name, phone, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			phone = excluded.phone,
			updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, rec.Name, rec.Phone, rec.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	return nil
}

func (r *ContactsRepo) DeleteContact(ctx context.Context, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE user_id = ?`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
