package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/openfund/fundme/internal/domain"
)

type failingFeed struct{}

func (failingFeed) LatestAnswer(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, ErrNoAnswer
}
func (failingFeed) Decimals() int       { return 8 }
func (failingFeed) Version() int        { return 0 }
func (failingFeed) Description() string { return "failing feed" }

func TestMockFeed(t *testing.T) {
	feed := NewMockFeed(8, decimal.New(2000, 8))

	answer, err := feed.LatestAnswer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.Equal(decimal.New(2000, 8)) {
		t.Errorf("answer = %s, want 2000e8", answer)
	}
	if feed.Decimals() != 8 {
		t.Errorf("Decimals = %d, want 8", feed.Decimals())
	}
	if feed.Version() != 4 {
		t.Errorf("Version = %d, want 4", feed.Version())
	}

	feed.UpdateAnswer(decimal.New(3000, 8))
	answer, _ = feed.LatestAnswer(context.Background())
	if !answer.Equal(decimal.New(3000, 8)) {
		t.Errorf("updated answer = %s, want 3000e8", answer)
	}
}

func TestConverterConvertToUsd(t *testing.T) {
	conv := NewConverter(NewMockFeed(8, decimal.New(2000, 8)))

	// 0.1 native unit at 2000 USD/unit -> 200 USD
	usd, err := conv.ConvertToUsd(context.Background(), domain.Units("0.1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usd.Equal(decimal.New(200, 18)) {
		t.Errorf("usd = %s, want 200e18", usd)
	}

	usd, err = conv.ConvertToUsd(context.Background(), decimal.Zero)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !usd.IsZero() {
		t.Errorf("usd = %s, want 0", usd)
	}
}

func TestConverterFeedError(t *testing.T) {
	conv := NewConverter(failingFeed{})

	_, err := conv.ConvertToUsd(context.Background(), domain.Units("1"))
	if !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("err = %v, want ErrNoAnswer", err)
	}
}

func TestConverterVersionPassthrough(t *testing.T) {
	conv := NewConverter(NewMockFeed(8, decimal.New(2000, 8)))
	if conv.Version() != 4 {
		t.Errorf("Version = %d, want 4", conv.Version())
	}
}
