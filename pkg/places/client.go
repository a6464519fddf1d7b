package places

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

// Client queries the geocoding API for free-text place lookups.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds a place-lookup client against baseURL.
// No retries: a failed lookup is terminal, the next keystroke triggers a
// fresh one anyway.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

// Lookup fetches raw geocoding records for the query text. Callers treat any
// error as "no suggestions"; there is no user-visible failure channel here.
func (c *Client) Lookup(ctx context.Context, q string) ([]GeoRecord, error) {
	var records []GeoRecord

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":              q,
			"format":         "jsonv2",
			"addressdetails": "1",
		}).
		SetResult(&records).
		Get(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("place lookup: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("place lookup: status %d", resp.StatusCode())
	}

	log.Debugf("Place lookup %q returned %d records", q, len(records))
	return records, nil
}
