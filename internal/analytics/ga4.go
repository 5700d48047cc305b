package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// ga4Endpoint is the GA4 measurement protocol collection endpoint.
	ga4Endpoint = "https://www.google-analytics.com/mp/collect"
)

// GA4Client reports events to Google Analytics 4 over the measurement
// protocol. It replaces the browser-side gtag() calls of the static site.
type GA4Client struct {
	httpClient    *http.Client
	measurementID string
	apiSecret     string
}

// NewGA4Client constructs a GA4 measurement protocol client.
func NewGA4Client(measurementID, apiSecret string) *GA4Client {
	return &GA4Client{
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		measurementID: measurementID,
		apiSecret:     apiSecret,
	}
}

type ga4Payload struct {
	ClientID string     `json:"client_id"`
	Events   []ga4Event `json:"events"`
}

type ga4Event struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Track posts the event to GA4. Failures are logged and discarded: the sink
// must never surface errors into the rendering or redirect flow.
func (c *GA4Client) Track(ctx context.Context, e Event) {
	clientID := e.Params["client_id"]
	if clientID == "" {
		clientID = uuid.New().String()
	}

	body, err := json.Marshal(ga4Payload{
		ClientID: clientID,
		Events:   []ga4Event{{Name: e.Name, Params: e.Params}},
	})
	if err != nil {
		log.Error().Err(err).Str("event", e.Name).Msg("Failed to marshal GA4 event")
		return
	}

	url := fmt.Sprintf("%s?measurement_id=%s&api_secret=%s", ga4Endpoint, c.measurementID, c.apiSecret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("event", e.Name).Msg("Failed to build GA4 request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("event", e.Name).Msg("GA4 request failed")
		return
	}
	defer resp.Body.Close()

	// The collect endpoint answers 2xx even for malformed events; anything
	// else means credentials or connectivity trouble.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Str("event", e.Name).Msg("GA4 rejected event")
	}
}
