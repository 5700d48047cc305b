package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/achoumais/achoumais/internal/models"
)

// EventRepository persists tracked analytics events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// InsertBatch stores a batch of events in one transaction.
func (r *EventRepository) InsertBatch(ctx context.Context, events []models.TrackedEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO events (event_id, name, params, occurred_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (event_id) DO NOTHING`
	for _, e := range events {
		if _, err := tx.ExecContext(ctx, query, e.EventID, e.Name, e.Params, e.OccurredAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountByName returns event totals grouped by event name.
func (r *EventRepository) CountByName(ctx context.Context) ([]models.EventCount, error) {
	query := `SELECT name, COUNT(*) AS total FROM events GROUP BY name ORDER BY total DESC`

	var counts []models.EventCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

// CountOutboundByStore aggregates manual and automatic outbound clicks per
// store key.
func (r *EventRepository) CountOutboundByStore(ctx context.Context) ([]models.StoreCount, error) {
	query := `SELECT COALESCE(params->>'store', '') AS store, COUNT(*) AS total
	          FROM events
	          WHERE name IN ('manual_click', 'auto_redirect')
	          GROUP BY 1 ORDER BY total DESC`

	var counts []models.StoreCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

// Recent returns the latest events, newest first.
func (r *EventRepository) Recent(ctx context.Context, limit int) ([]models.TrackedEvent, error) {
	query := `SELECT id, event_id, name, params, occurred_at, created_at
	          FROM events ORDER BY occurred_at DESC LIMIT $1`

	var events []models.TrackedEvent
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, err
	}
	return events, nil
}
