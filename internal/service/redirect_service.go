package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/catalog"
	"github.com/achoumais/achoumais/internal/redirect"
)

// RedirectService resolves redirect-page requests into terminal states and
// fires the associated view/outbound tracking events.
type RedirectService struct {
	loader  *catalog.FeedLoader
	tracker analytics.Tracker
	baseURL string
}

// NewRedirectService constructs a RedirectService.
func NewRedirectService(loader *catalog.FeedLoader, tracker analytics.Tracker, baseURL string) *RedirectService {
	return &RedirectService{
		loader:  loader,
		tracker: tracker,
		baseURL: baseURL,
	}
}

// Resolve runs one resolution pass: missing id, feed failure, unknown
// product and unusable offers each map to their terminal state; a usable
// offer yields StateSuccess with a normalized affiliate URL.
func (s *RedirectService) Resolve(ctx context.Context, id, store string) redirect.Resolution {
	if id == "" {
		return redirect.NotFound()
	}

	products, err := s.loader.Load(ctx)
	if err != nil {
		return redirect.LoadError()
	}

	product := catalog.FindByID(products, id)
	if product == nil {
		return redirect.NotFound()
	}

	return redirect.Resolve(product, store)
}

// TrackView fires the product_view event plus the synthetic page_view with
// the per-product canonical URL, mirroring the GA4 events of the original
// redirect page. Both are best-effort.
func (s *RedirectService) TrackView(ctx context.Context, res redirect.Resolution, pageTitle string) {
	if res.State != redirect.StateSuccess {
		return
	}

	s.tracker.Track(ctx, analytics.Event{
		Name: analytics.EventProductView,
		Params: map[string]string{
			"product_id":   res.Product.ID,
			"product_name": res.Product.Title,
			"store":        res.Store,
			"page_type":    "product_redirect",
		},
	})

	pageLocation := fmt.Sprintf("%s/p/produto?id=%s&store=%s",
		s.baseURL, url.QueryEscape(res.Product.ID), url.QueryEscape(res.Store))
	s.tracker.Track(ctx, analytics.Event{
		Name: analytics.EventPageView,
		Params: map[string]string{
			"page_title":    pageTitle,
			"page_location": pageLocation,
			"page_path":     "/p/produto/" + res.Product.ID,
		},
	})
}

// TrackOutbound fires the manual_click or auto_redirect event for a resolved
// offer right before the visitor leaves for the store.
func (s *RedirectService) TrackOutbound(ctx context.Context, res redirect.Resolution, trigger string) {
	if res.State != redirect.StateSuccess {
		return
	}

	name := analytics.EventManualClick
	if trigger == "auto" {
		name = analytics.EventAutoRedirect
	}

	s.tracker.Track(ctx, analytics.Event{
		Name: name,
		Params: map[string]string{
			"event_category": "affiliate",
			"product_id":     res.Product.ID,
			"product_name":   res.Product.Title,
			"store":          res.Store,
			"outbound_url":   res.AffiliateURL,
			"transport_type": "beacon",
		},
	})
}
