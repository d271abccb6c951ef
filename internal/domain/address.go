package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Address identifies an account in the execution environment.
// Canonical form is "0x" followed by 40 lowercase hex digits.
type Address string

// ZeroAddress is the empty account identity.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// ParseAddress validates and normalizes an address string.
func ParseAddress(s string) (Address, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "0x") {
		return "", fmt.Errorf("address %q: missing 0x prefix", s)
	}
	body := s[2:]
	if len(body) != 40 {
		return "", fmt.Errorf("address %q: want 40 hex digits, got %d", s, len(body))
	}
	if _, err := hex.DecodeString(body); err != nil {
		return "", fmt.Errorf("address %q: %w", s, err)
	}
	return Address(s), nil
}

// MustParseAddress is ParseAddress for known-good literals. Panics on error.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsZero returns true for the empty or all-zero address.
func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

// Short returns an abbreviated form for logs: "0x694a..5306".
func (a Address) Short() string {
	s := string(a)
	if len(s) < 10 {
		return s
	}
	return s[:6] + ".." + s[len(s)-4:]
}

// DeriveAddress deterministically derives a child address from a creator
// identity and a label, used to place new ledger accounts in the environment.
func DeriveAddress(creator Address, label string) Address {
	sum := sha256.Sum256([]byte(string(creator) + ":" + label))
	return Address("0x" + hex.EncodeToString(sum[:20]))
}
