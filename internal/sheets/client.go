package sheets

import (
	"time"
)

// Fetcher is the capability the KPI core consumes to obtain raw tables.
// Implementations own timeout, retry, and caching policy; the core never
// retries. A nil table with a non-nil error means the fetch failed.
type Fetcher interface {
	Fetch(spreadsheetID string, readRange string) (*Table, error)
}

// Config holds the connection settings for the spreadsheet backend.
type Config struct {
	BaseURL string
	APIKey  string

	// Performance Settings
	RequestDelay time.Duration
	Timeout      time.Duration
}

// NewClient creates a live values-API client from the provided configuration.
func NewClient(cfg Config) Fetcher {
	return newValuesClient(cfg)
}
