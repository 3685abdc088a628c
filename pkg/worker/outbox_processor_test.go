package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/pkg/logger"
	"github.com/itsivali/careconnect-v1/pkg/metrics"
)

type outboxRepoMock struct {
	mu        sync.Mutex
	events    []*model.OutboxEvent
	processed []uuid.UUID
	failed    map[uuid.UUID]string
}

func newOutboxRepoMock() *outboxRepoMock {
	return &outboxRepoMock{failed: make(map[uuid.UUID]string)}
}

func (m *outboxRepoMock) Create(_ context.Context, event *model.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *outboxRepoMock) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.OutboxEvent
	for _, e := range m.events {
		if e.Status == model.OutboxStatusPending {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *outboxRepoMock) MarkProcessed(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Status = model.OutboxStatusProcessed
		}
	}
	m.processed = append(m.processed, id)
	return nil
}

func (m *outboxRepoMock) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Status = model.OutboxStatusFailed
		}
	}
	m.failed[id] = reason
	return nil
}

func (m *outboxRepoMock) DeleteProcessedBefore(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*model.OutboxEvent
	var deleted int64
	for _, e := range m.events {
		if e.Status == model.OutboxStatusProcessed && e.UpdatedAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.events = kept
	return deleted, nil
}

type brokerMock struct {
	mu        sync.Mutex
	published map[string][]interface{}
	failFirst int
}

func newBrokerMock() *brokerMock {
	return &brokerMock{published: make(map[string][]interface{})}
}

func (b *brokerMock) Publish(_ context.Context, channel string, message interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failFirst > 0 {
		b.failFirst--
		return errors.New("broker unavailable")
	}
	b.published[channel] = append(b.published[channel], message)
	return nil
}

func (b *brokerMock) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return nil, errors.New("not implemented")
}

func (b *brokerMock) Close() error { return nil }

var testMetrics = metrics.NewMetrics("careconnect_test", "worker")

func newTestProcessor(repo *outboxRepoMock, broker *brokerMock) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Millisecond,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}, logger.NewLogger(nil), testMetrics)
}

func pendingEvent(eventType string) *model.OutboxEvent {
	payload, _ := json.Marshal(map[string]string{"id": uuid.NewString()})
	now := time.Now()
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   payload,
		Status:    model.OutboxStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := newOutboxRepoMock()
	broker := newBrokerMock()
	require.NoError(t, repo.Create(context.Background(), pendingEvent("patient.created")))
	require.NoError(t, repo.Create(context.Background(), pendingEvent("bill.created")))

	p := newTestProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Len(t, repo.processed, 2)
	assert.Len(t, broker.published["patient.created"], 1)
	assert.Len(t, broker.published["bill.created"], 1)
}

func TestProcessEventsRetriesTransientFailure(t *testing.T) {
	repo := newOutboxRepoMock()
	broker := newBrokerMock()
	broker.failFirst = 1
	require.NoError(t, repo.Create(context.Background(), pendingEvent("doctor.created")))

	p := newTestProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Len(t, repo.processed, 1)
	assert.Empty(t, repo.failed)
}

func TestProcessEventsMarksFailedAfterRetries(t *testing.T) {
	repo := newOutboxRepoMock()
	broker := newBrokerMock()
	broker.failFirst = 10
	event := pendingEvent("service.created")
	require.NoError(t, repo.Create(context.Background(), event))

	p := newTestProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Empty(t, repo.processed)
	assert.Contains(t, repo.failed, event.ID)
}

func TestFailedEventNotRetriedAsPending(t *testing.T) {
	repo := newOutboxRepoMock()
	broker := newBrokerMock()
	broker.failFirst = 10
	event := pendingEvent("appointment.scheduled")
	require.NoError(t, repo.Create(context.Background(), event))

	p := newTestProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))
	require.NoError(t, p.processEvents(context.Background()))

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.Equal(t, model.OutboxStatusFailed, event.Status)
	assert.Empty(t, broker.published)
}

func TestDeleteProcessedBefore(t *testing.T) {
	repo := newOutboxRepoMock()
	broker := newBrokerMock()
	event := pendingEvent("patient.updated")
	event.UpdatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(context.Background(), event))

	p := newTestProcessor(repo, broker)
	require.NoError(t, p.processEvents(context.Background()))

	deleted, err := repo.DeleteProcessedBefore(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
