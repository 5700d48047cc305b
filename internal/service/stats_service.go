package service

import (
	"context"

	"github.com/achoumais/achoumais/internal/models"
	"github.com/achoumais/achoumais/internal/repository"
)

// StatsService aggregates the first-party event store for the admin surface.
type StatsService struct {
	eventRepo *repository.EventRepository
}

// NewStatsService constructs a StatsService.
func NewStatsService(eventRepo *repository.EventRepository) *StatsService {
	return &StatsService{eventRepo: eventRepo}
}

// Stats is the admin events summary.
type Stats struct {
	ByEvent []models.EventCount   `json:"byEvent"`
	ByStore []models.StoreCount   `json:"byStore"`
	Recent  []models.TrackedEvent `json:"recent"`
}

// Summary returns event totals, outbound clicks per store and the most
// recent events.
func (s *StatsService) Summary(ctx context.Context, recentLimit int) (*Stats, error) {
	byEvent, err := s.eventRepo.CountByName(ctx)
	if err != nil {
		return nil, err
	}
	byStore, err := s.eventRepo.CountOutboundByStore(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.eventRepo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	return &Stats{ByEvent: byEvent, ByStore: byStore, Recent: recent}, nil
}
