// Package analytics models the event-reporting sink as an injected optional
// capability. Every implementation is fire-and-forget: reporting must never
// block or break the page flow that triggered it.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Event names mirrored from the site's GA4 vocabulary.
const (
	EventProductView  = "product_view"
	EventPageView     = "page_view"
	EventManualClick  = "manual_click"
	EventAutoRedirect = "auto_redirect"
	EventDailyShow    = "daily_product_show"
	EventNavClick     = "nav_click"
	EventCTAClick     = "cta_click"
	EventProductClick = "product_click"
)

// Event is one analytics event with a flat string parameter mapping.
type Event struct {
	Name       string            `json:"name"`
	Params     map[string]string `json:"params,omitempty"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// Tracker is the reporting capability. Implementations must be safe for
// concurrent use and must swallow their own failures.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

// Noop is the absent-sink implementation.
type Noop struct{}

// Track discards the event.
func (Noop) Track(context.Context, Event) {}

// Multi fans an event out to several sinks. A panicking or slow sink never
// affects the others or the caller.
type Multi struct {
	trackers []Tracker
}

// NewMulti builds a fan-out tracker. Nil entries are skipped.
func NewMulti(trackers ...Tracker) *Multi {
	m := &Multi{}
	for _, t := range trackers {
		if t != nil {
			m.trackers = append(m.trackers, t)
		}
	}
	return m
}

// Track dispatches to every sink, stamping the event time if unset.
func (m *Multi) Track(ctx context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	for _, t := range m.trackers {
		safeTrack(ctx, t, e)
	}
}

func safeTrack(ctx context.Context, t Tracker, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("event", e.Name).Msg("Analytics sink panicked")
		}
	}()
	t.Track(ctx, e)
}

// LogTracker reports events into the structured log. It is always wired so
// every deployment has at least one observable sink.
type LogTracker struct{}

// Track writes the event at info level.
func (LogTracker) Track(_ context.Context, e Event) {
	ev := log.Info().Str("event", e.Name)
	for k, v := range e.Params {
		ev = ev.Str(k, v)
	}
	ev.Msg("Analytics event")
}
