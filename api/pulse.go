package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"ticker-search/credentials"
	"ticker-search/models"
)

// PulseFetcher retrieves the sentiment payload for a resolved ticker.
type PulseFetcher interface {
	Fetch(ctx context.Context, ticker string) (*models.Pulse, error)
}

// PulseError is a non-200 answer from the sentiment backend.
type PulseError struct {
	Status int
	Detail string
}

func (e *PulseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("market pulse: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("market pulse: status %d", e.Status)
}

// PulseClient calls GET {base}/market-pulse?ticker=X. No retries are attempted.
type PulseClient struct {
	baseURL      string
	httpClient   *http.Client
	credProvider credentials.Provider
}

func NewPulseClient(baseURL string, timeout time.Duration, credProvider credentials.Provider) *PulseClient {
	return &PulseClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		credProvider: credProvider,
	}
}

func (c *PulseClient) Fetch(ctx context.Context, ticker string) (*models.Pulse, error) {
	apiKey, err := credentials.Optional(c.credProvider, credentials.PulseAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	u := c.baseURL + "/market-pulse?" + url.Values{"ticker": {ticker}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// FastAPI style error body: {"detail": "..."}
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(body, &e)
		return nil, &PulseError{Status: resp.StatusCode, Detail: e.Detail}
	}

	var pulse models.Pulse
	if err := json.Unmarshal(body, &pulse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &pulse, nil
}
