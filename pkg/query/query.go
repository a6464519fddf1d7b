// Package query holds the session's search criteria in one explicit struct
// instead of scattered mutable fields, so every consumer sees the same state.
package query

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is the validation failure for a submission with nothing to
// search by. Its text is the user-facing message; no request may be issued.
var ErrEmptyQuery = errors.New("enter a city, country, or keyword to search")

// Query is the mutable per-session search state.
// Country is an ISO-2 code; empty means any country.
type Query struct {
	City    string
	Country string
	Keyword string
}

// Normalize trims all fields and uppercases the country code in place.
func (q *Query) Normalize() {
	q.City = strings.TrimSpace(q.City)
	q.Country = strings.ToUpper(strings.TrimSpace(q.Country))
	q.Keyword = strings.TrimSpace(q.Keyword)
}

// Validate requires at least one non-empty field.
func (q Query) Validate() error {
	if strings.TrimSpace(q.City) == "" &&
		strings.TrimSpace(q.Country) == "" &&
		strings.TrimSpace(q.Keyword) == "" {
		return ErrEmptyQuery
	}
	return nil
}

// IsZero reports whether the query has no criteria at all.
func (q Query) IsZero() bool {
	return q.Validate() != nil
}
