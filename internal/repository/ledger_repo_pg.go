package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

// EventLedger is the upsert log of inbound provider events. It is the single
// source of truth for whether an event's effects were already applied; the
// store's unique constraint on event_id is the only mutual-exclusion
// mechanism between concurrent deliveries.
type EventLedger interface {
	RecordSeen(ctx context.Context, eventID, eventType string, payload []byte) (*domain.IngestedEvent, error)
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
	RecordFailure(ctx context.Context, eventID string, procErr error) error
	ListStaleFailures(ctx context.Context, olderThan time.Time, minAttempts int) ([]domain.IngestedEvent, error)
}

type PGEventLedger struct {
	db *pgxpool.Pool
}

func NewEventLedger(db *pgxpool.Pool) EventLedger {
	return &PGEventLedger{db: db}
}

// RecordSeen upserts the ledger row for an event. A redelivered event updates
// only updated_at: the processed flag and attempt count are never reset by a
// repeat sighting.
func (r *PGEventLedger) RecordSeen(ctx context.Context, eventID, eventType string, payload []byte) (*domain.IngestedEvent, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO ingested_events (event_id, event_type, raw_payload)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id) DO UPDATE SET updated_at = now()
		RETURNING event_id, event_type, raw_payload, processed, processed_at, attempt_count, last_error, created_at, updated_at`,
		eventID, eventType, payload)
	var e domain.IngestedEvent
	if err := row.Scan(&e.EventID, &e.EventType, &e.RawPayload, &e.Processed, &e.ProcessedAt, &e.AttemptCount, &e.LastError, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PGEventLedger) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	var processed bool
	err := r.db.QueryRow(ctx, `SELECT processed FROM ingested_events WHERE event_id=$1`, eventID).Scan(&processed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return processed, nil
}

func (r *PGEventLedger) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := r.db.Exec(ctx, `UPDATE ingested_events SET processed=true, processed_at=now(), updated_at=now() WHERE event_id=$1`, eventID)
	return err
}

func (r *PGEventLedger) RecordFailure(ctx context.Context, eventID string, procErr error) error {
	_, err := r.db.Exec(ctx, `UPDATE ingested_events SET last_error=$1, attempt_count=attempt_count+1, updated_at=now() WHERE event_id=$2`,
		procErr.Error(), eventID)
	return err
}

// ListStaleFailures reports rows that failed at least minAttempts times and
// have not been retried since olderThan. Used by the worker sweep for
// operator visibility only; redelivery remains the provider's job.
func (r *PGEventLedger) ListStaleFailures(ctx context.Context, olderThan time.Time, minAttempts int) ([]domain.IngestedEvent, error) {
	rows, err := r.db.Query(ctx, `SELECT event_id, event_type, raw_payload, processed, processed_at, attempt_count, last_error, created_at, updated_at
		FROM ingested_events
		WHERE processed=false AND attempt_count >= $1 AND updated_at <= $2
		ORDER BY updated_at`, minAttempts, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stale []domain.IngestedEvent
	for rows.Next() {
		var e domain.IngestedEvent
		if err := rows.Scan(&e.EventID, &e.EventType, &e.RawPayload, &e.Processed, &e.ProcessedAt, &e.AttemptCount, &e.LastError, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		stale = append(stale, e)
	}
	return stale, rows.Err()
}

var _ EventLedger = (*PGEventLedger)(nil)
