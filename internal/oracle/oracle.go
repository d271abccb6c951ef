// Package oracle provides the price feed abstraction used to value native
// contributions in USD, with a mock feed for local profiles and an HTTP
// quote feed for live ones.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

// ErrNoAnswer indicates the feed could not produce a price.
var ErrNoAnswer = errors.New("oracle: no answer available")

// Feed supplies the current native/USD exchange rate. The answer is scaled
// by 10^Decimals() USD per whole native unit.
type Feed interface {
	LatestAnswer(ctx context.Context) (decimal.Decimal, error)
	Decimals() int
	Version() int
	Description() string
}

// Converter values native amounts in 18-decimal USD through a bound Feed.
type Converter struct {
	feed Feed
}

// NewConverter creates a Converter. The feed is required.
func NewConverter(feed Feed) *Converter {
	if feed == nil {
		panic("oracle.NewConverter: feed is nil")
	}
	return &Converter{feed: feed}
}

// ConvertToUsd returns the 18-decimal USD value of a native amount.
func (c *Converter) ConvertToUsd(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	answer, err := c.feed.LatestAnswer(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching feed answer: %w", err)
	}
	return domain.UsdValue(amount, answer, c.feed.Decimals()), nil
}

// Version reports the bound feed's version.
func (c *Converter) Version() int {
	return c.feed.Version()
}

// Description reports the bound feed's description.
func (c *Converter) Description() string {
	return c.feed.Description()
}
