/*
Package search fetches event results and owns the session state the
presentation layer renders from: current results, sort key, page size and
page number.

Failure taxonomy, in order of severity: a validation failure rejects the
submission before any request is made; an API failure surfaces the upstream
detail text and clears partial results; an empty result is not a failure at
all, just an informational message.
*/
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/query"
	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx answer from the event search API. Detail is the
// human-readable message shown to the user.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("event search failed (%d): %s", e.Status, e.Detail)
}

// Result is a successful search response.
type Result struct {
	Events  []events.Record `json:"events"`
	Total   int             `json:"total"`
	Message string          `json:"message,omitempty"`
}

// apiFault is the error body the API sends on non-2xx.
type apiFault struct {
	Detail string `json:"detail"`
}

// Client queries the event search API.
type Client struct {
	http    *resty.Client
	baseURL string
}

// NewClient builds an event search client against baseURL. No retries
// anywhere: every failure is terminal for that submission.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    resty.New().SetTimeout(timeout),
		baseURL: baseURL,
	}
}

// Search validates q and fetches matching events. Validation failures return
// query.ErrEmptyQuery without touching the network. Empty result sets are not
// errors; Result.Message carries the informational text.
func (c *Client) Search(ctx context.Context, q query.Query) (*Result, error) {
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	searchesTotal.Inc()

	params := make(map[string]string)
	if q.Keyword != "" {
		params["keyword"] = q.Keyword
	}
	if q.City != "" {
		params["city"] = q.City
	}
	if q.Country != "" {
		params["country"] = q.Country
	}

	result := &Result{}
	fault := &apiFault{}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(fault).
		Get(c.baseURL + "/events")
	if err != nil {
		searchFailuresTotal.Inc()
		return nil, fmt.Errorf("event search: %w", err)
	}

	if resp.IsError() {
		searchFailuresTotal.Inc()
		detail := fault.Detail
		if detail == "" {
			detail = "failed to fetch events, please try again"
		}
		return nil, &APIError{Status: resp.StatusCode(), Detail: detail}
	}

	if len(result.Events) == 0 {
		emptyResultsTotal.Inc()
		if result.Message == "" {
			result.Message = "No events found"
		}
	}

	log.Debugf("Search city=%q country=%q keyword=%q returned %d events",
		q.City, q.Country, q.Keyword, len(result.Events))
	return result, nil
}
