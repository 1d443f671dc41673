package repository

import (
	"context"
	"fmt"
	"time"
)

// SaleEvent is one row of the sale-event outbox. Rows are inserted inside the
// same sql.Tx as the transaction record, so every committed sale has exactly
// one event and a failed commit leaves none.
type SaleEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time
}

// GetUnpublishedEvents returns up to limit pending events, oldest first.
func (r *Repository) GetUnpublishedEvents(ctx context.Context, limit int) ([]*SaleEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, created_at
	          FROM sale_events WHERE published_at IS NULL
	          ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unpublished events: %w", err)
	}
	defer rows.Close()

	var events []*SaleEvent
	for rows.Next() {
		var e SaleEvent
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale event row: %w", err)
		}
		events = append(events, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

func (r *Repository) MarkEventPublished(ctx context.Context, id int64) error {
	query := `UPDATE sale_events SET published_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark event published: %w", err)
	}
	return nil
}
