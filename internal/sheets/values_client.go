package sheets

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://sheets.googleapis.com"

type valuesClient struct {
	cfg        Config
	httpClient *http.Client

	// The orchestrator shares one client across per-location goroutines, so
	// the throttle state needs its own lock.
	throttleMutex sync.Mutex
	lastRequest   time.Time

	// Session Cache
	cache      map[string]*cacheEntry
	cacheMutex sync.RWMutex
}

type cacheEntry struct {
	Table      *Table
	Expiration time.Time
}

func newValuesClient(cfg Config) *valuesClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &valuesClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *valuesClient) getFromCache(key string) (*Table, bool) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}
	if time.Now().After(entry.Expiration) {
		delete(c.cache, key)
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")
	return entry.Table, true
}

func (c *valuesClient) addToCache(key string, table *Table, ttl time.Duration) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()

	c.cache[key] = &cacheEntry{
		Table:      table,
		Expiration: time.Now().Add(ttl),
	}
	log.Debug().Str("key", key).Dur("ttl", ttl).Msg("Added to cache")
}

// throttle spaces outgoing requests by RequestDelay. The lock is held across
// the sleep so concurrent fetchers queue instead of firing simultaneously.
func (c *valuesClient) throttle() {
	c.throttleMutex.Lock()
	defer c.throttleMutex.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling sheets request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

// Fetch retrieves one sheet range as a Table via the values endpoint.
func (c *valuesClient) Fetch(spreadsheetID string, readRange string) (*Table, error) {
	cacheKey := spreadsheetID + ":" + readRange
	if table, ok := c.getFromCache(cacheKey); ok {
		return table, nil
	}

	c.throttle()

	params := url.Values{}
	params.Set("valueRenderOption", "UNFORMATTED_VALUE")
	params.Set("dateTimeRenderOption", "FORMATTED_STRING")
	if c.cfg.APIKey != "" {
		params.Set("key", c.cfg.APIKey)
	}

	fetchURL := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		c.cfg.BaseURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange), params.Encode())

	log.Info().Str("spreadsheet", spreadsheetID).Str("range", readRange).Msg("Requesting sheet values")

	req, err := http.NewRequest("GET", fetchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, fmt.Errorf("sheets authentication failed (401/403) for %s; check the API key", spreadsheetID)
		case http.StatusNotFound:
			return nil, fmt.Errorf("spreadsheet %s range %s not found", spreadsheetID, readRange)
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("sheets rate limit exceeded (429)")
		default:
			return nil, fmt.Errorf("sheets API returned status %d for %s", resp.StatusCode, spreadsheetID)
		}
	}

	var body struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode values response: %w", err)
	}

	table := NewTable(body.Values)
	c.addToCache(cacheKey, table, 10*time.Minute)

	return table, nil
}
