package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultDexScreenerBaseURL is the public DexScreener API root
const DefaultDexScreenerBaseURL = "https://api.dexscreener.com"

const dexScreenerTimeout = 10 * time.Second

// tokenMetaCacheSize bounds the LRU of token name/symbol metadata. Metadata
// is immutable for a given contract address, so cached entries never expire.
const tokenMetaCacheSize = 512

type tokenMeta struct {
	Name   string
	Symbol string
}

// DexScreenerClient resolves token contract addresses to prices and metadata
// via the DexScreener pair lookup. It backs the user-created token family.
type DexScreenerClient struct {
	baseURL    string
	httpClient *http.Client
	meta       *lru.Cache[string, tokenMeta]
}

// NewDexScreenerClient creates a DexScreener token source
func NewDexScreenerClient(baseURL string) (*DexScreenerClient, error) {
	if baseURL == "" {
		baseURL = DefaultDexScreenerBaseURL
	}
	meta, err := lru.New[string, tokenMeta](tokenMetaCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token metadata cache: %w", err)
	}
	return &DexScreenerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: dexScreenerTimeout,
		},
		meta: meta,
	}, nil
}

// dexScreenerResponse mirrors the /latest/dex/tokens/{address} payload
type dexScreenerResponse struct {
	Pairs []struct {
		PriceUSD  string `json:"priceUsd"`
		FDV       any    `json:"fdv"`
		BaseToken struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"baseToken"`
	} `json:"pairs"`
}

// Price returns the current USD price for a token contract address
func (c *DexScreenerClient) Price(ctx context.Context, address string) (float64, error) {
	info, err := c.Token(ctx, address)
	if err != nil {
		return 0, err
	}
	return info.Price, nil
}

// Token returns price plus metadata for a token contract address. Name and
// symbol are served from the LRU when the address has been seen before.
func (c *DexScreenerClient) Token(ctx context.Context, address string) (TokenInfo, error) {
	endpoint := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TokenInfo{}, unavailable("dexscreener", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenInfo{}, unavailable("dexscreener", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TokenInfo{}, unavailablef("dexscreener", "status %d for %s", resp.StatusCode, address)
	}

	var body dexScreenerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TokenInfo{}, unavailable("dexscreener", err)
	}
	if len(body.Pairs) == 0 {
		return TokenInfo{}, unavailablef("dexscreener", "no pairs for %s", address)
	}

	pair := body.Pairs[0]
	price, err := strconv.ParseFloat(pair.PriceUSD, 64)
	if err != nil || price <= 0 {
		return TokenInfo{}, unavailablef("dexscreener", "no price for %s", address)
	}

	info := TokenInfo{
		Price:     price,
		Name:      pair.BaseToken.Name,
		Symbol:    pair.BaseToken.Symbol,
		MarketCap: parseFDV(pair.FDV),
	}
	if cached, ok := c.meta.Get(address); ok {
		if info.Name == "" {
			info.Name = cached.Name
		}
		if info.Symbol == "" {
			info.Symbol = cached.Symbol
		}
	} else if info.Name != "" || info.Symbol != "" {
		c.meta.Add(address, tokenMeta{Name: info.Name, Symbol: info.Symbol})
	}
	return info, nil
}

// parseFDV tolerates both numeric and string fdv values seen in the wild
func parseFDV(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}
