package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrFeedUnavailable is returned when every candidate feed source failed.
var ErrFeedUnavailable = fmt.Errorf("feed unavailable")

// FeedLoader fetches the product feed from an ordered list of candidate
// sources (local file paths or http(s) URLs). The first source that loads
// and parses wins. Nothing is cached: every call reads the feed fresh.
type FeedLoader struct {
	sources    []string
	httpClient *http.Client
}

// NewFeedLoader constructs a FeedLoader with sane defaults.
func NewFeedLoader(sources []string) *FeedLoader {
	return &FeedLoader{
		sources:    sources,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Load tries each candidate source in order and returns the first feed that
// loads. If all candidates fail it returns ErrFeedUnavailable wrapping the
// last error.
func (l *FeedLoader) Load(ctx context.Context) ([]Product, error) {
	var lastErr error
	for _, src := range l.sources {
		products, err := l.loadOne(ctx, src)
		if err != nil {
			log.Debug().Err(err).Str("source", src).Msg("Feed candidate failed")
			lastErr = err
			continue
		}
		return products, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, lastErr)
}

func (l *FeedLoader) loadOne(ctx context.Context, src string) ([]Product, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		data, err = l.fetchHTTP(ctx, src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse %s: %w", src, err)
	}
	return products, nil
}

func (l *FeedLoader) fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Never serve the feed stale from an intermediary cache.
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d em %s", resp.StatusCode, url)
	}

	// Cap reads so a misconfigured source cannot exhaust memory.
	const maxFeedSize = 10 << 20
	return io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
}
