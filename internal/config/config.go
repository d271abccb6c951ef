// Package config selects the network profile and loads service
// configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// NetworkProfile fixes the price feed wiring for one named network.
type NetworkProfile struct {
	Name         string
	Local        bool           // local profiles run a mock feed
	Aggregator   domain.Address // live native/USD aggregator identity
	FeedDecimals int
	FeedVersion  int
	CoinID       string // quote API identifier for live resolution

	// Mock feed parameters, local profiles only.
	MockInitialAnswer decimal.Decimal
}

// Network names.
const (
	NetworkLocal   = "local"
	NetworkSepolia = "sepolia"
	NetworkMainnet = "mainnet"
)

// profiles is the fixed network lookup table. The local profile creates a
// mock feed with 8 decimals at 2000 USD per unit; the live profiles carry
// their Chainlink ETH/USD aggregator addresses.
var profiles = map[string]NetworkProfile{
	NetworkLocal: {
		Name:              NetworkLocal,
		Local:             true,
		FeedDecimals:      8,
		FeedVersion:       4,
		MockInitialAnswer: decimal.New(2000, 8),
	},
	NetworkSepolia: {
		Name:         NetworkSepolia,
		Aggregator:   domain.MustParseAddress("0x694AA1769357215DE4FAC081bf1f309aDC325306"),
		FeedDecimals: 8,
		FeedVersion:  4,
		CoinID:       "ethereum",
	},
	NetworkMainnet: {
		Name:         NetworkMainnet,
		Aggregator:   domain.MustParseAddress("0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"),
		FeedDecimals: 8,
		FeedVersion:  6,
		CoinID:       "ethereum",
	},
}

// Profile resolves a network name to its fixed profile.
func Profile(name string) (NetworkProfile, error) {
	p, ok := profiles[name]
	if !ok {
		return NetworkProfile{}, fmt.Errorf("unknown network %q", name)
	}
	return p, nil
}

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Network       string
	OwnerAddress  string
	HTTPPort      string
	DatabaseURL   string
	AdminAPIKey   string
	StatementPath string

	QuoteURL          string
	QuoteRetryMax     int
	QuoteRetryDelay   time.Duration
	QuoteCacheTTL     time.Duration
	QuoteInterval     time.Duration
	StatementInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Network:       envOrDefault("NETWORK", NetworkLocal),
		OwnerAddress:  envOrDefault("OWNER_ADDRESS", "0x000000000000000000000000000000000000f00d"),
		HTTPPort:      envOrDefault("HTTP_PORT", "8080"),
		DatabaseURL:   envOrDefault("DATABASE_URL", ""),
		AdminAPIKey:   envOrDefaultWarn("ADMIN_API_KEY", ""),
		StatementPath: envOrDefault("STATEMENT_PATH", ""),

		QuoteURL:          envOrDefault("QUOTE_URL", "https://api.coingecko.com/api/v3"),
		QuoteRetryMax:     envOrDefaultInt("QUOTE_RETRY_MAX", 5),
		QuoteRetryDelay:   envOrDefaultDuration("QUOTE_RETRY_DELAY", 2*time.Second),
		QuoteCacheTTL:     envOrDefaultDuration("QUOTE_CACHE_TTL", 30*time.Second),
		QuoteInterval:     envOrDefaultDuration("QUOTE_INTERVAL", 10*time.Minute),
		StatementInterval: envOrDefaultDuration("STATEMENT_INTERVAL", 24*time.Hour),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
