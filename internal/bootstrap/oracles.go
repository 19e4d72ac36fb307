package bootstrap

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/pricetide/pricetide/internal/config"
	"github.com/pricetide/pricetide/internal/logger"
	"github.com/pricetide/pricetide/internal/market"
	"github.com/pricetide/pricetide/internal/oracle"
)

// InitializeOracles builds the per-family price sources and registers them on
// a single router. When Redis is configured every source is wrapped in the
// shared price cache so concurrent settlements reuse samples.
func InitializeOracles(cfg *config.Config, catalog *market.Catalog) (*oracle.Router, oracle.TokenSource, error) {
	dexScreener, err := oracle.NewDexScreenerClient(cfg.DexScreenerBaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create dexscreener client: %w", err)
	}

	sources := map[string]oracle.Source{
		market.FamilyCrypto:  oracle.NewCoinGeckoClient(cfg.CoinGeckoBaseURL, catalog.CoingeckoIDs),
		market.FamilyStock:   oracle.NewStockQuoteClient(cfg.StockQuoteBaseURL, cfg.StockQuoteAPIKey),
		market.FamilyOnchain: oracle.NewMetricsClient(cfg.MetricsBaseURL),
		market.FamilyCustom:  dexScreener,
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		logger.Info(LogMsgOracleCacheEnabled, "addr", cfg.RedisAddr, "ttl", OracleCacheTTL)
	}

	router := oracle.NewRouter()
	for family, src := range sources {
		if rdb != nil {
			src = oracle.NewCachedSource(src, rdb, family, OracleCacheTTL)
		}
		router.Register(family, src)
	}

	logger.Info(LogMsgOraclesInitialized, "families", len(sources), "cached", rdb != nil)

	return router, dexScreener, nil
}
