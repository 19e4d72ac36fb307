package market

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/pricetide/pricetide/internal/domain"
)

//go:embed catalog_default.toml
var defaultCatalogTOML []byte

// catalogFile is the TOML shape of the market catalog
type catalogFile struct {
	Crypto struct {
		Symbols      []string          `toml:"symbols"`
		CoingeckoIDs map[string]string `toml:"coingecko_ids"`
	} `toml:"crypto"`
	Stock struct {
		Symbols []string          `toml:"symbols"`
		Names   map[string]string `toml:"names"`
	} `toml:"stock"`
	Onchain struct {
		Categories []string `toml:"categories"`
	} `toml:"onchain"`
}

// Catalog holds the family descriptors plus the per-family set of supported
// market keys. The key lists come from a TOML file; the user-created family
// accepts any token contract address and has no fixed key list.
type Catalog struct {
	families map[string]Family

	cryptoSymbols map[string]bool
	stockSymbols  map[string]bool
	categories    map[string]bool

	// CoingeckoIDs maps crypto symbols to CoinGecko coin ids for the oracle
	CoingeckoIDs map[string]string

	// StockNames maps stock symbols to display names
	StockNames map[string]string
}

// LoadCatalog reads the market catalog from path, falling back to the
// embedded defaults when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogTOML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read market catalog: %w", err)
		}
		data = b
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse market catalog: %w", err)
	}

	c := &Catalog{
		families:      builtinFamilies(),
		cryptoSymbols: make(map[string]bool),
		stockSymbols:  make(map[string]bool),
		categories:    make(map[string]bool),
		CoingeckoIDs:  file.Crypto.CoingeckoIDs,
		StockNames:    file.Stock.Names,
	}
	for _, s := range file.Crypto.Symbols {
		c.cryptoSymbols[s] = true
	}
	for _, s := range file.Stock.Symbols {
		c.stockSymbols[s] = true
	}
	for _, cat := range file.Onchain.Categories {
		c.categories[cat] = true
	}
	return c, nil
}

// Family returns the descriptor for the named family
func (c *Catalog) Family(name string) (Family, error) {
	f, ok := c.families[name]
	if !ok {
		return Family{}, fmt.Errorf("%w: %s", domain.ErrMarketNotFound, name)
	}
	return f, nil
}

// SupportsKey reports whether marketKey is a valid key in the given family.
// The custom family is open-ended; its keys are token contract addresses
// validated at round creation time.
func (c *Catalog) SupportsKey(family, marketKey string) bool {
	switch family {
	case FamilyCrypto:
		return c.cryptoSymbols[marketKey]
	case FamilyStock:
		return c.stockSymbols[marketKey]
	case FamilyOnchain:
		return c.categories[marketKey]
	case FamilyCustom:
		return marketKey != ""
	default:
		return false
	}
}

// Keys returns the supported market keys for a fixed-key family
func (c *Catalog) Keys(family string) []string {
	var m map[string]bool
	switch family {
	case FamilyCrypto:
		m = c.cryptoSymbols
	case FamilyStock:
		m = c.stockSymbols
	case FamilyOnchain:
		m = c.categories
	default:
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarketKeys returns the supported keys for every fixed-key family
func (c *Catalog) MarketKeys() map[string][]string {
	return map[string][]string{
		FamilyCrypto:  c.Keys(FamilyCrypto),
		FamilyStock:   c.Keys(FamilyStock),
		FamilyOnchain: c.Keys(FamilyOnchain),
	}
}
