package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
)

// EmitEvent records an entity change in the outbox for asynchronous
// publication. Emission is best-effort: a failure is logged and the
// request still succeeds, since the write it describes has already
// been committed.
func EmitEvent(ctx context.Context, repo repository.OutboxRepository, eventType string, payload interface{}) {
	if repo == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to marshal outbox payload")
		return
	}

	now := time.Now()
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   body,
		Status:    model.OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, event); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to record outbox event")
	}
}
