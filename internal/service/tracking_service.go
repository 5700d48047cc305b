package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/cache"
	"github.com/achoumais/achoumais/internal/models"
	"github.com/achoumais/achoumais/internal/sse"
)

// QueueTracker feeds events into the Redis pending queue for the flush
// worker. Enqueue failures are logged and dropped.
type QueueTracker struct {
	queue *cache.EventQueue
}

// NewQueueTracker constructs a QueueTracker.
func NewQueueTracker(queue *cache.EventQueue) *QueueTracker {
	return &QueueTracker{queue: queue}
}

// Track enqueues the event.
func (t *QueueTracker) Track(ctx context.Context, e analytics.Event) {
	if err := t.queue.Enqueue(ctx, e); err != nil {
		log.Warn().Err(err).Str("event", e.Name).Msg("Failed to enqueue analytics event")
	}
}

// HubTracker broadcasts events to connected admin SSE clients.
type HubTracker struct {
	hub *sse.Hub
}

// NewHubTracker constructs a HubTracker.
func NewHubTracker(hub *sse.Hub) *HubTracker {
	return &HubTracker{hub: hub}
}

// Track broadcasts the event; marshalling problems are swallowed.
func (t *HubTracker) Track(_ context.Context, e analytics.Event) {
	params, err := json.Marshal(e.Params)
	if err != nil {
		return
	}
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	t.hub.Broadcast(&models.TrackedEvent{
		EventID:    uuid.New().String(),
		Name:       e.Name,
		Params:     params,
		OccurredAt: occurred,
	})
}

// Beacon event names accepted from the public /v1/track endpoint. Anything
// else is dropped so the endpoint cannot pollute the event store.
var allowedBeaconEvents = map[string]bool{
	analytics.EventNavClick:     true,
	analytics.EventCTAClick:     true,
	analytics.EventProductClick: true,
}

// TrackingService accepts delegated click-listener beacons from pages.
type TrackingService struct {
	tracker analytics.Tracker
}

// NewTrackingService constructs a TrackingService.
func NewTrackingService(tracker analytics.Tracker) *TrackingService {
	return &TrackingService{tracker: tracker}
}

// ReportBeacon forwards an accepted beacon into the sink fan-out. Returns
// false for event names outside the beacon vocabulary.
func (s *TrackingService) ReportBeacon(ctx context.Context, name string, params map[string]string) bool {
	if !allowedBeaconEvents[name] {
		return false
	}
	s.tracker.Track(ctx, analytics.Event{Name: name, Params: params})
	return true
}
