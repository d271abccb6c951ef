// Package deploy wires a network profile into a running funding ledger:
// it resolves the profile, constructs the matching price feed, and places
// the ledger account in the execution environment.
package deploy

import (
	"fmt"
	"log/slog"

	"github.com/openfund/fundme/internal/chain"
	"github.com/openfund/fundme/internal/config"
	"github.com/openfund/fundme/internal/domain"
	"github.com/openfund/fundme/internal/journal"
	"github.com/openfund/fundme/internal/ledger"
	"github.com/openfund/fundme/internal/oracle"
)

// Result is a deployed ledger and the collaborators bound to it.
type Result struct {
	Ledger  *ledger.Ledger
	Feed    oracle.Feed
	Profile config.NetworkProfile
}

// Run deploys a funding ledger for the configured network. Local profiles
// get a mock feed with the profile's fixed decimals and initial answer;
// live profiles get the HTTP quote feed standing in for their aggregator.
func Run(cfg config.Config, bank *chain.Bank, jnl journal.Journal) (*Result, error) {
	profile, err := config.Profile(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("resolving network profile: %w", err)
	}

	owner, err := domain.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		return nil, fmt.Errorf("parsing owner address: %w", err)
	}

	feed := buildFeed(cfg, profile)
	address := domain.DeriveAddress(owner, "fundme:"+profile.Name)
	l := ledger.New(owner, address, oracle.NewConverter(feed), bank, jnl)

	slog.Info("ledger deployed",
		"network", profile.Name,
		"owner", owner.Short(),
		"address", address.Short(),
		"feed", feed.Description(),
		"feedVersion", feed.Version())

	return &Result{Ledger: l, Feed: feed, Profile: profile}, nil
}

func buildFeed(cfg config.Config, profile config.NetworkProfile) oracle.Feed {
	if profile.Local {
		return oracle.NewMockFeed(profile.FeedDecimals, profile.MockInitialAnswer)
	}
	return oracle.NewHTTPFeed(oracle.HTTPFeedConfig{
		BaseURL:        cfg.QuoteURL,
		CoinID:         profile.CoinID,
		Decimals:       profile.FeedDecimals,
		Version:        profile.FeedVersion,
		Aggregator:     profile.Aggregator,
		RetryMax:       cfg.QuoteRetryMax,
		RetryBaseDelay: cfg.QuoteRetryDelay,
		CacheTTL:       cfg.QuoteCacheTTL,
	})
}
