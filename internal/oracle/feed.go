package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// HTTPFeedConfig carries the wiring for a live quote feed.
type HTTPFeedConfig struct {
	BaseURL        string
	CoinID         string // quote API identifier of the native asset, e.g. "ethereum"
	Decimals       int
	Version        int
	Aggregator     domain.Address // on-chain aggregator identity of the profile
	RetryMax       int
	RetryBaseDelay time.Duration
	CacheTTL       time.Duration
}

// HTTPFeed resolves the native/USD rate from an HTTP quote API, caching
// answers for the configured TTL and retrying on rate limiting.
type HTTPFeed struct {
	cfg        HTTPFeedConfig
	httpClient *http.Client
	cache      *quoteCache
}

// NewHTTPFeed creates a live quote feed.
func NewHTTPFeed(cfg HTTPFeedConfig) *HTTPFeed {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Second
	}
	return &HTTPFeed{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      newQuoteCache(cfg.CacheTTL),
	}
}

// LatestAnswer returns the current rate scaled by 10^Decimals, served from
// cache when fresh.
func (f *HTTPFeed) LatestAnswer(ctx context.Context) (decimal.Decimal, error) {
	if answer, ok := f.cache.get(f.cfg.CoinID); ok {
		return answer, nil
	}

	answer, err := f.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	f.cache.set(f.cfg.CoinID, answer)
	return answer, nil
}

// Refresh resolves a fresh quote, bypassing and repopulating the cache.
func (f *HTTPFeed) Refresh(ctx context.Context) error {
	answer, err := f.fetch(ctx)
	if err != nil {
		return err
	}
	f.cache.set(f.cfg.CoinID, answer)
	return nil
}

// Decimals returns the feed's answer scale.
func (f *HTTPFeed) Decimals() int { return f.cfg.Decimals }

// Version returns the profile's reported feed version.
func (f *HTTPFeed) Version() int { return f.cfg.Version }

// Description identifies the aggregator this feed stands in for.
func (f *HTTPFeed) Description() string {
	return fmt.Sprintf("%s/usd feed (%s)", f.cfg.CoinID, f.cfg.Aggregator.Short())
}

func (f *HTTPFeed) fetch(ctx context.Context) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", f.cfg.BaseURL, f.cfg.CoinID)

	body, err := f.fetchWithRetry(ctx, url)
	if err != nil {
		return decimal.Zero, err
	}

	// Parse: {"ethereum":{"usd":2000.12}}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return decimal.Zero, fmt.Errorf("parsing quote response: %w", err)
	}

	quotes, ok := raw[f.cfg.CoinID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s missing from quote response", ErrNoAnswer, f.cfg.CoinID)
	}
	usd, ok := quotes["usd"]
	if !ok || usd <= 0 {
		return decimal.Zero, fmt.Errorf("%w: no positive usd quote for %s", ErrNoAnswer, f.cfg.CoinID)
	}

	return decimal.NewFromFloat(usd).Shift(int32(f.cfg.Decimals)).Truncate(0), nil
}

func (f *HTTPFeed) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := range f.cfg.RetryMax + 1 {
		if attempt > 0 {
			baseDelay := f.cfg.RetryBaseDelay
			if baseDelay == 0 {
				baseDelay = 2 * time.Second
			}
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating quote request: %w", err)
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("quote request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading quote response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("quote API rate limited (attempt %d/%d)", attempt+1, f.cfg.RetryMax+1)
			continue
		}

		return nil, fmt.Errorf("quote API HTTP %d: %s", resp.StatusCode, string(body))
	}

	return nil, lastErr
}
