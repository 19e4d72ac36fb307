// Package oracle implements clients for the external price and metric feeds
// that rounds are opened and settled against. Feed unavailability is a normal
// outcome surfaced as domain.ErrOracleUnavailable, never a panic or a fatal
// error; callers decline to open, or retry settlement on a later sweep.
package oracle

import (
	"context"
	"fmt"

	"github.com/pricetide/pricetide/internal/domain"
)

// Source provides the current reference value for a market key within a
// single family (a crypto symbol, a stock ticker, an on-chain category or a
// token contract address).
type Source interface {
	Price(ctx context.Context, key string) (float64, error)
}

// TokenInfo is the DexScreener metadata used when opening a user-created
// token round
type TokenInfo struct {
	Price     float64
	Name      string
	Symbol    string
	MarketCap float64
}

// TokenSource resolves a token contract address to its current price and
// metadata
type TokenSource interface {
	Source
	Token(ctx context.Context, address string) (TokenInfo, error)
}

// Router selects the Source for a market family. It is the single oracle
// entry point for the round manager and the settlement engine.
type Router struct {
	sources map[string]Source
}

// NewRouter creates an empty Router
func NewRouter() *Router {
	return &Router{sources: make(map[string]Source)}
}

// Register binds a family name to its price source
func (r *Router) Register(family string, src Source) {
	r.sources[family] = src
}

// Price samples the feed for marketKey in the given family
func (r *Router) Price(ctx context.Context, family, marketKey string) (float64, error) {
	src, ok := r.sources[family]
	if !ok {
		return 0, fmt.Errorf("%w: no price source for family %s", domain.ErrMarketNotFound, family)
	}
	return src.Price(ctx, marketKey)
}

// unavailable wraps an underlying feed failure as ErrOracleUnavailable so
// callers can branch with errors.Is
func unavailable(feed string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrOracleUnavailable, feed, err)
}

func unavailablef(feed, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrOracleUnavailable, feed, fmt.Sprintf(format, args...))
}
