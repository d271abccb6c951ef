package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"zero", "0", "0", false},
		{"integer units", "100000000000000000", "100000000000000000", false},
		{"whitespace", " 42 ", "42", false},
		{"negative", "-1", "", true},
		{"fractional", "1.5", "", true},
		{"garbage", "abc", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	if got := Units("0.1"); !got.Equal(decimal.New(1, 17)) {
		t.Errorf("Units(0.1) = %s, want 1e17", got)
	}
	if got := Units("1"); !got.Equal(decimal.New(1, 18)) {
		t.Errorf("Units(1) = %s, want 1e18", got)
	}
	if got := Units("bogus"); !got.IsZero() {
		t.Errorf("Units(bogus) = %s, want 0", got)
	}
}

func TestUsdValue(t *testing.T) {
	answer := decimal.New(2000, 8) // 2000 USD per unit, 8 feed decimals

	tests := []struct {
		name   string
		amount decimal.Decimal
		want   decimal.Decimal
	}{
		{"0.1 unit at 2000", Units("0.1"), decimal.New(200, 18)},
		{"1 unit at 2000", Units("1"), decimal.New(2000, 18)},
		{"zero amount", decimal.Zero, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UsdValue(tt.amount, answer, 8)
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUsdValueMeetsMinimum(t *testing.T) {
	answer := decimal.New(2000, 8)

	// 0.1 unit converts to 200 USD, well above the 5 USD floor.
	if UsdValue(Units("0.1"), answer, 8).LessThan(MinimumUsd) {
		t.Error("0.1 unit at 2000 USD should meet the minimum")
	}
	// Zero never meets the floor.
	if !UsdValue(decimal.Zero, answer, 8).LessThan(MinimumUsd) {
		t.Error("zero amount should be below the minimum")
	}
	// 0.002 units at 2000 is 4 USD, just under.
	if !UsdValue(Units("0.002"), answer, 8).LessThan(MinimumUsd) {
		t.Error("4 USD should be below the 5 USD minimum")
	}
	// 0.0025 units at 2000 is exactly 5 USD.
	if UsdValue(Units("0.0025"), answer, 8).LessThan(MinimumUsd) {
		t.Error("exactly 5 USD should meet the minimum")
	}
}

func TestFormatUsd(t *testing.T) {
	tests := []struct {
		name  string
		value decimal.Decimal
		want  string
	}{
		{"whole", decimal.New(200, 18), "200"},
		{"fractional", decimal.New(55, 17), "5.5"},
		{"zero", decimal.Zero, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUsd(tt.value); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
