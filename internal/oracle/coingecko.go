package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pricetide/pricetide/internal/domain"
)

// DefaultCoinGeckoBaseURL is the public CoinGecko API root
const DefaultCoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// coinGeckoTimeout bounds every call; the feed is external and a hung
// request must not stall round opening or settlement
const coinGeckoTimeout = 10 * time.Second

// CoinGeckoClient fetches USD spot prices for crypto symbols from the
// CoinGecko simple-price endpoint.
type CoinGeckoClient struct {
	baseURL    string
	ids        map[string]string // symbol -> CoinGecko coin id
	httpClient *http.Client
}

// NewCoinGeckoClient creates a CoinGecko price source. ids maps market keys
// (symbols like "BTC") to CoinGecko coin ids ("bitcoin"); symbols without a
// mapping are treated as unavailable.
func NewCoinGeckoClient(baseURL string, ids map[string]string) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoBaseURL
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		ids:     ids,
		httpClient: &http.Client{
			Timeout: coinGeckoTimeout,
		},
	}
}

// Price returns the current USD price for one symbol
func (c *CoinGeckoClient) Price(ctx context.Context, symbol string) (float64, error) {
	prices, err := c.Prices(ctx, []string{symbol})
	if err != nil {
		return 0, err
	}
	price, ok := prices[strings.ToUpper(symbol)]
	if !ok {
		return 0, unavailablef("coingecko", "no price for %s", symbol)
	}
	return price, nil
}

// Prices returns current USD prices for several symbols in one batch call.
// Symbols the feed does not return are simply absent from the result map.
func (c *CoinGeckoClient) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	var coinIDs []string
	for _, s := range symbols {
		if id, ok := c.ids[strings.ToUpper(s)]; ok {
			coinIDs = append(coinIDs, id)
		}
	}
	if len(coinIDs) == 0 {
		return nil, fmt.Errorf("%w: coingecko: no known symbols in %v", domain.ErrOracleUnavailable, symbols)
	}

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(coinIDs, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, unavailable("coingecko", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("coingecko", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, unavailablef("coingecko", "status %d", resp.StatusCode)
	}

	// Response shape: {"bitcoin": {"usd": 64021.5}, ...}
	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, unavailable("coingecko", err)
	}

	result := make(map[string]float64)
	for _, s := range symbols {
		upper := strings.ToUpper(s)
		id, ok := c.ids[upper]
		if !ok {
			continue
		}
		if quote, ok := body[id]; ok {
			if usd, ok := quote["usd"]; ok && usd > 0 {
				result[upper] = usd
			}
		}
	}
	return result, nil
}
