package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

type outboxRepository struct {
	db *sqlx.DB
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	event.ID = uuid.New()
	event.Status = model.OutboxStatusPending
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	query := `
		INSERT INTO outbox_events (id, event_type, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.EventType, []byte(event.Payload), string(event.Status),
		event.CreatedAt, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		SELECT id, event_type, payload, status, error, created_at, updated_at
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2
	`
	var events []*model.OutboxEvent
	if err := r.db.SelectContext(ctx, &events, query, string(model.OutboxStatusPending), limit); err != nil {
		return nil, fmt.Errorf("failed to fetch pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE outbox_events SET status = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, string(model.OutboxStatusProcessed), time.Now(), id)
	return err
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE outbox_events SET status = $1, error = $2, updated_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, string(model.OutboxStatusFailed), reason, time.Now(), id)
	return err
}

func (r *outboxRepository) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM outbox_events WHERE status = $1 AND updated_at < $2`
	res, err := r.db.ExecContext(ctx, query, string(model.OutboxStatusProcessed), before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
