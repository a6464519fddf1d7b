/*
Package server implements msgpack IPC for the event search front-end core.

The server package provides a minimal interface for driving the suggestion
engine and the result pipeline using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports keystroke input,
suggestion picks, search submissions and view navigation ops.
Each message contains an ID field and other fields based on the operation type.

Keystroke input uses mainly this structure:

	{"id": "in_001", "op": "input", "q": "par"}

Input is acknowledged immediately; the suggestion list lands later as an
unsolicited push once the debounce window closes and the lookup resolves:

	{"id": "in_001", "s": [{"n": "Paris", "cc": "FR"}], "v": true, "c": 1}

A push carries the ID of the newest input request. Pushes for superseded
keystrokes never happen: stale lookups are dropped inside the engine.

Search and navigation are synchronous request/response:

	{"id": "s_001", "op": "search"}
	{"id": "s_002", "op": "sort", "k": "name-asc"}
	{"id": "s_003", "op": "size", "sz": "30"}
	{"id": "s_004", "op": "page", "pg": 2}

Each returns the full recomputed view: the page slice, counts, the page
window and any info or error message text.

# Message Types

Request covers every op; unused fields are omitted on the wire.
SuggestResponse carries the candidate list and the visibility flag.
ViewResponse carries one rendered page of the result pipeline plus timing data.
ErrorResponse carries failure text with an HTTP-ish status code; validation
failures use 400 and never reach the network.
*/
package server

// Request represents an incoming request from the client
type Request struct {
	ID      string `msgpack:"id"`
	Op      string `msgpack:"op"`
	Text    string `msgpack:"q,omitempty"`       // input text or keyword args
	Index   int    `msgpack:"i,omitempty"`       // pick index
	Key     string `msgpack:"k,omitempty"`       // sort key
	Size    string `msgpack:"sz,omitempty"`      // page size, a number or "all"
	Page    int    `msgpack:"pg,omitempty"`      // page number
	City    string `msgpack:"city,omitempty"`    // query ops
	Country string `msgpack:"country,omitempty"` // query ops
	Keyword string `msgpack:"kw,omitempty"`      // query ops
}

// SuggestionPayload - one candidate in a suggestion push
type SuggestionPayload struct {
	Name        string `msgpack:"n"`
	FullName    string `msgpack:"fn,omitempty"`
	Country     string `msgpack:"co,omitempty"`
	CountryCode string `msgpack:"cc,omitempty"`
}

// SuggestResponse - suggestion list push
type SuggestResponse struct {
	ID          string              `msgpack:"id"`
	Suggestions []SuggestionPayload `msgpack:"s"`
	Visible     bool                `msgpack:"v"`
	Count       int                 `msgpack:"c"`
}

// EventPayload - one event row in a view response
type EventPayload struct {
	ID       string `msgpack:"id"`
	Name     string `msgpack:"n"`
	Date     string `msgpack:"d,omitempty"`
	Venue    string `msgpack:"ve,omitempty"`
	Location string `msgpack:"loc,omitempty"`
	URL      string `msgpack:"url,omitempty"`
	Image    string `msgpack:"img,omitempty"`
}

// ViewResponse - one rendered page of the result pipeline
type ViewResponse struct {
	ID         string         `msgpack:"id"`
	Events     []EventPayload `msgpack:"e"`
	Total      int            `msgpack:"total"`
	Page       int            `msgpack:"pg"`
	TotalPages int            `msgpack:"tp"`
	Window     []int          `msgpack:"w,omitempty"`
	SortKey    string         `msgpack:"sk"`
	PageSize   string         `msgpack:"sz"`
	Message    string         `msgpack:"msg,omitempty"`
	Error      string         `msgpack:"err,omitempty"`
	TimeTaken  int64          `msgpack:"t"`
}

// QueryResponse - query state after a mutation op
type QueryResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	City    string `msgpack:"city,omitempty"`
	Country string `msgpack:"country,omitempty"`
	Keyword string `msgpack:"kw,omitempty"`
}

// StatusResponse - plain acknowledgement
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
