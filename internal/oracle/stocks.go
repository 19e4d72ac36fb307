package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const stockQuoteTimeout = 10 * time.Second

// maxConcurrentQuotes bounds parallel quote fetches in Quotes
const maxConcurrentQuotes = 4

// StockQuoteClient fetches equity spot prices from a quote REST API.
// The endpoint shape is GET {base}/quote?symbol=AAPL returning {"symbol":
// "AAPL", "price": 187.32}.
type StockQuoteClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewStockQuoteClient creates a stock price source
func NewStockQuoteClient(baseURL, apiKey string) *StockQuoteClient {
	return &StockQuoteClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: stockQuoteTimeout,
		},
	}
}

type stockQuote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// Price returns the current quote for one ticker
func (c *StockQuoteClient) Price(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, unavailable("stocks", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, unavailable("stocks", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, unavailablef("stocks", "status %d for %s", resp.StatusCode, symbol)
	}

	var quote stockQuote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return 0, unavailable("stocks", err)
	}
	if quote.Price <= 0 {
		return 0, unavailablef("stocks", "no quote for %s", symbol)
	}
	return quote.Price, nil
}

// Quotes fetches several tickers concurrently. Tickers that fail are absent
// from the result; the call only errors when every fetch failed.
func (c *StockQuoteClient) Quotes(ctx context.Context, symbols []string) (map[string]float64, error) {
	var mu sync.Mutex
	result := make(map[string]float64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			price, err := c.Price(gctx, symbol)
			if err != nil {
				// Individual feed misses are tolerated
				return nil
			}
			mu.Lock()
			result[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(result) == 0 && len(symbols) > 0 {
		return nil, unavailablef("stocks", "no quotes for %v", symbols)
	}
	return result, nil
}
