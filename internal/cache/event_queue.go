package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/models"
)

const pendingEventsKey = "events:pending"

// EventQueue buffers tracked events in Redis until the flush worker drains
// them into the event store. Enqueueing is best-effort.
type EventQueue struct {
	redis *RedisClient
}

// NewEventQueue creates a new EventQueue.
func NewEventQueue(redis *RedisClient) *EventQueue {
	return &EventQueue{redis: redis}
}

// queuedEvent is the wire form of a pending event in Redis.
type queuedEvent struct {
	EventID    string            `json:"eventId"`
	Name       string            `json:"name"`
	Params     map[string]string `json:"params,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Enqueue pushes an analytics event onto the pending list.
func (q *EventQueue) Enqueue(ctx context.Context, e analytics.Event) error {
	data, err := json.Marshal(queuedEvent{
		EventID:    uuid.New().String(),
		Name:       e.Name,
		Params:     e.Params,
		OccurredAt: e.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal pending event: %w", err)
	}
	return q.redis.LPush(ctx, pendingEventsKey, string(data))
}

// Drain pops up to limit pending events, oldest first. Events that fail to
// decode are dropped rather than wedging the queue.
func (q *EventQueue) Drain(ctx context.Context, limit int) ([]models.TrackedEvent, error) {
	raw, err := q.redis.RPopCount(ctx, pendingEventsKey, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to pop pending events: %w", err)
	}

	events := make([]models.TrackedEvent, 0, len(raw))
	for _, item := range raw {
		var qe queuedEvent
		if err := json.Unmarshal([]byte(item), &qe); err != nil {
			continue
		}
		params, err := json.Marshal(qe.Params)
		if err != nil {
			continue
		}
		events = append(events, models.TrackedEvent{
			EventID:    qe.EventID,
			Name:       qe.Name,
			Params:     params,
			OccurredAt: qe.OccurredAt,
		})
	}
	return events, nil
}

// Pending returns the number of queued events.
func (q *EventQueue) Pending(ctx context.Context) (int64, error) {
	return q.redis.LLen(ctx, pendingEventsKey)
}
