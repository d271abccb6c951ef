package domain

import (
	"strings"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Address
		wantErr bool
	}{
		{"valid lowercase", "0x694aa1769357215de4fac081bf1f309adc325306", "0x694aa1769357215de4fac081bf1f309adc325306", false},
		{"mixed case normalized", "0x694AA1769357215DE4FAC081bf1f309aDC325306", "0x694aa1769357215de4fac081bf1f309adc325306", false},
		{"surrounding whitespace", "  0x694aa1769357215de4fac081bf1f309adc325306 ", "0x694aa1769357215de4fac081bf1f309adc325306", false},
		{"missing prefix", "694aa1769357215de4fac081bf1f309adc325306", "", true},
		{"too short", "0x694aa1", "", true},
		{"non-hex digits", "0xzz4aa1769357215de4fac081bf1f309adc325306", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	if !ZeroAddress.IsZero() {
		t.Error("ZeroAddress should be zero")
	}
	if !Address("").IsZero() {
		t.Error("empty address should be zero")
	}
	if Address("0x694aa1769357215de4fac081bf1f309adc325306").IsZero() {
		t.Error("real address should not be zero")
	}
}

func TestAddressShort(t *testing.T) {
	a := Address("0x694aa1769357215de4fac081bf1f309adc325306")
	if got := a.Short(); got != "0x694a..5306" {
		t.Errorf("Short = %q", got)
	}
}

func TestDeriveAddress(t *testing.T) {
	creator := MustParseAddress("0x694aa1769357215de4fac081bf1f309adc325306")

	a := DeriveAddress(creator, "fundme")
	b := DeriveAddress(creator, "fundme")
	if a != b {
		t.Errorf("derivation not deterministic: %q != %q", a, b)
	}
	if a == DeriveAddress(creator, "other") {
		t.Error("different labels should derive different addresses")
	}

	if _, err := ParseAddress(string(a)); err != nil {
		t.Errorf("derived address not canonical: %v", err)
	}
	if !strings.HasPrefix(string(a), "0x") || len(a) != 42 {
		t.Errorf("derived address malformed: %q", a)
	}
}
