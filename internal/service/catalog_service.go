package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/catalog"
)

// CatalogService loads the feed and produces filtered, paginated catalog
// pages plus the product-of-the-day pick.
//
// Store keys in the catalog flow are matched on their raw lowercased form
// (ml/sp/amz); only the redirect flow applies the alias table. The asymmetry
// comes straight from the site this service replaces.
type CatalogService struct {
	loader   *catalog.FeedLoader
	tracker  analytics.Tracker
	pageSize int
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(loader *catalog.FeedLoader, tracker analytics.Tracker, pageSize int) *CatalogService {
	return &CatalogService{
		loader:   loader,
		tracker:  tracker,
		pageSize: pageSize,
	}
}

// BrowseResult is one catalog page plus the daily pick for the same load.
type BrowseResult struct {
	Page     catalog.Page
	Daily    catalog.Product
	HasDaily bool
}

// Browse fetches the feed fresh, filters it by query and slices the
// requested page. The daily pick is computed from the same load; its absence
// (empty feed) is not an error because the daily section is best-effort.
func (s *CatalogService) Browse(ctx context.Context, query string, page int) (BrowseResult, error) {
	products, err := s.loader.Load(ctx)
	if err != nil {
		return BrowseResult{}, err
	}

	filtered := catalog.Filter(products, query)
	result := BrowseResult{
		Page: catalog.Paginate(filtered, page, s.pageSize),
	}

	now := time.Now()
	pick, dayKey, ok := catalog.DailyPick(products, now)
	if ok {
		result.Daily = pick
		result.HasDaily = true
		s.tracker.Track(ctx, analytics.Event{
			Name: analytics.EventDailyShow,
			Params: map[string]string{
				"product_id":   pick.ID,
				"product_name": pick.Title,
				"day":          dayKey,
			},
		})
	} else {
		log.Debug().Msg("Daily pick skipped: empty feed")
	}

	return result, nil
}

// Load fetches the raw feed for callers that resolve single products.
func (s *CatalogService) Load(ctx context.Context) ([]catalog.Product, error) {
	return s.loader.Load(ctx)
}
