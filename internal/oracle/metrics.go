package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const metricsTimeout = 15 * time.Second

// MetricsClient fetches 24h on-chain activity metrics (token launches,
// graduations) from an aggregator REST API. Endpoint shape:
// GET {base}/metrics/{category} returning {"category": "...", "value": 1234}.
type MetricsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMetricsClient creates an on-chain metrics source
func NewMetricsClient(baseURL string) *MetricsClient {
	return &MetricsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: metricsTimeout,
		},
	}
}

type metricResponse struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Price returns the current value of an on-chain metric category. The value
// is a count, not a price, but it plays the same reference-value role in the
// round lifecycle.
func (c *MetricsClient) Price(ctx context.Context, category string) (float64, error) {
	endpoint := fmt.Sprintf("%s/metrics/%s", c.baseURL, url.PathEscape(category))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, unavailable("onchain-metrics", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, unavailable("onchain-metrics", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, unavailablef("onchain-metrics", "status %d for %s", resp.StatusCode, category)
	}

	var body metricResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, unavailable("onchain-metrics", err)
	}
	if body.Value < 0 {
		return 0, unavailablef("onchain-metrics", "negative value for %s", category)
	}
	return body.Value, nil
}
