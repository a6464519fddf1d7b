// Package events implements the result pipeline: date parsing, sorting and
// pagination over fetched event records. Every function here is pure; records
// are caller-owned and only reordered or sliced, never mutated.
package events

// Record is a single event as the search API returns it. The pipeline only
// depends on ID, Name, Venue and Date; the rest rides along for display.
//
// Date is either "YYYY-MM-DD" or "YYYY-MM-DD at HH:MM" and may be empty or
// garbage, upstream data is not trustworthy.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Venue    string `json:"venue"`
	Location string `json:"location,omitempty"`
	URL      string `json:"url,omitempty"`
	Image    string `json:"image,omitempty"`
}
