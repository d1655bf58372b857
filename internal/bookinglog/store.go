// Package bookinglog keeps an audit trail of confirmed bookings in
// PostgreSQL. Conversation state itself never touches the database; only the
// final outcome is recorded.
package bookinglog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Record is one confirmed booking.
type Record struct {
	ChatID       int64
	HolderName   string
	ScheduledFor time.Time
	EventID      string
	EventLink    string
	CreatedAt    time.Time
}

// Store persists confirmed bookings. A nil Store (or nil db) is a no-op so
// deployments without a database skip the audit trail entirely.
type Store struct {
	db *sql.DB
}

// NewStore creates a booking log store.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

// RecordBooking inserts one confirmed booking row.
func (s *Store) RecordBooking(ctx context.Context, rec Record) error {
	if s == nil || s.db == nil {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (chat_id, holder_name, scheduled_for, event_id, event_link, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		rec.ChatID, rec.HolderName, rec.ScheduledFor, rec.EventID, rec.EventLink,
	)
	if err != nil {
		return fmt.Errorf("bookinglog: failed to record booking: %w", err)
	}
	return nil
}

// RecentBookings returns the most recent confirmed bookings, newest first.
func (s *Store) RecentBookings(ctx context.Context, limit int) ([]Record, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT chat_id, holder_name, scheduled_for, event_id, event_link, created_at
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("bookinglog: failed to query bookings: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ChatID, &rec.HolderName, &rec.ScheduledFor, &rec.EventID, &rec.EventLink, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("bookinglog: failed to scan booking: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookinglog: failed to iterate bookings: %w", err)
	}
	return records, nil
}
