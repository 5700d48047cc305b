package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/cache"
	"github.com/achoumais/achoumais/internal/repository"
)

// FlushWorker drains the Redis pending-event queue into the Postgres event
// store on a fixed interval.
type FlushWorker struct {
	queue     *cache.EventQueue
	eventRepo *repository.EventRepository
	interval  time.Duration
	batchSize int
}

// NewFlushWorker constructs a FlushWorker.
func NewFlushWorker(queue *cache.EventQueue, eventRepo *repository.EventRepository, interval time.Duration, batchSize int) *FlushWorker {
	return &FlushWorker{
		queue:     queue,
		eventRepo: eventRepo,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start begins the flush loop and listens for context cancellation. A final
// drain runs on shutdown so accepted events are not stranded in the queue.
func (w *FlushWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Int("batch_size", w.batchSize).Msg("Starting event flush worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.run(flushCtx)
			cancel()
			log.Info().Msg("Event flush worker stopped")
			return
		}
	}
}

func (w *FlushWorker) run(ctx context.Context) {
	for {
		events, err := w.queue.Drain(ctx, w.batchSize)
		if err != nil {
			log.Error().Err(err).Msg("Failed to drain pending events")
			return
		}
		if len(events) == 0 {
			return
		}

		if err := w.eventRepo.InsertBatch(ctx, events); err != nil {
			log.Error().Err(err).Int("count", len(events)).Msg("Failed to persist event batch")
			return
		}
		log.Debug().Int("count", len(events)).Msg("Persisted event batch")

		if len(events) < w.batchSize {
			return
		}
	}
}
