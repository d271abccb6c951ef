package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the fixed-point scale of the native currency: amounts
// are integers in the smallest unit, 10^18 smallest units per whole unit.
// USD values use the same 18-decimal scale, so 5 USD is 5e18.
const NativeDecimals = 18

var nativePerUnit = decimal.New(1, NativeDecimals)

// MinimumUsd is the USD-equivalent floor every contribution must meet.
var MinimumUsd = decimal.New(5, NativeDecimals)

// ParseAmount parses a non-negative integer amount in smallest native units.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q: negative", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return decimal.Zero, fmt.Errorf("amount %q: fractional smallest units", s)
	}
	return d.Truncate(0), nil
}

// Units converts a whole-unit quantity ("0.1") into smallest native units.
// Invalid input yields zero.
func Units(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Mul(nativePerUnit).Truncate(0)
}

// UsdValue converts a native amount into an 18-decimal USD value, given a
// feed answer scaled by 10^feedDecimals USD per whole native unit.
// Example: amount=1e17 (0.1 unit), answer=2000e8, feedDecimals=8 -> 200e18.
func UsdValue(amount, answer decimal.Decimal, feedDecimals int) decimal.Decimal {
	if feedDecimals < 0 {
		return decimal.Zero
	}
	return amount.Mul(answer).Div(decimal.New(1, int32(feedDecimals))).Truncate(0)
}

// FormatUsd renders an 18-decimal USD value as a human string with trailing
// zeros stripped: 200e18 -> "200".
func FormatUsd(v decimal.Decimal) string {
	s := v.Div(nativePerUnit).StringFixed(6)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
