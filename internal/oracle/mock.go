package oracle

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// mockFeedVersion matches the aggregator version the local mock reports.
const mockFeedVersion = 4

// MockFeed is a fixed-rate feed for local profiles. The answer can be
// updated at runtime to exercise price movement.
type MockFeed struct {
	mu       sync.RWMutex
	decimals int
	answer   decimal.Decimal
}

// NewMockFeed creates a mock feed with the given decimals and initial answer.
func NewMockFeed(decimals int, initialAnswer decimal.Decimal) *MockFeed {
	return &MockFeed{
		decimals: decimals,
		answer:   initialAnswer,
	}
}

// LatestAnswer returns the current configured answer.
func (m *MockFeed) LatestAnswer(_ context.Context) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.answer, nil
}

// UpdateAnswer replaces the current answer.
func (m *MockFeed) UpdateAnswer(answer decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
}

// Decimals returns the feed's answer scale.
func (m *MockFeed) Decimals() int { return m.decimals }

// Version returns the mock aggregator version.
func (m *MockFeed) Version() int { return mockFeedVersion }

// Description identifies the mock feed.
func (m *MockFeed) Description() string { return "mock native/USD feed" }
