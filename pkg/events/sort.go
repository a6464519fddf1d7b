package events

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the comparator used by Sort.
type SortKey string

const (
	SortDateAsc  SortKey = "date-asc"
	SortDateDesc SortKey = "date-desc"
	SortNameAsc  SortKey = "name-asc"
	SortNameDesc SortKey = "name-desc"
	SortVenueAsc SortKey = "venue-asc"

	// DefaultSort is what new sessions start with.
	DefaultSort = SortDateAsc
)

// dateTimeSeparator splits the optional time-of-day suffix off a record date.
// Time-of-day is never used as a sort tiebreaker.
const dateTimeSeparator = " at "

// ParseSortKey validates a sort key string, falling back to the default for
// anything it does not recognize.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortDateAsc, SortDateDesc, SortNameAsc, SortNameDesc, SortVenueAsc:
		return k
	}
	log.Debugf("Unknown sort key %q, using %s", s, DefaultSort)
	return DefaultSort
}

// ParseDate extracts a timestamp from a record's date string.
// Empty or unparsable dates map to the zero time, so they cluster at the
// earliest position under date-asc and the latest under date-desc. That is
// deliberate: a bad date must never fail the sort.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	datePart := s
	if i := strings.Index(s, dateTimeSeparator); i >= 0 {
		datePart = s[:i]
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(datePart))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Sort returns a fresh ordering of records under the given key. The input
// slice is left untouched. Unrecognized keys yield the identity order.
// Name and venue comparisons are collation-aware rather than byte-wise.
func Sort(records []Record, key SortKey) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	switch key {
	case SortDateAsc:
		sort.Slice(out, func(i, j int) bool {
			return ParseDate(out[i].Date).Before(ParseDate(out[j].Date))
		})
	case SortDateDesc:
		sort.Slice(out, func(i, j int) bool {
			return ParseDate(out[j].Date).Before(ParseDate(out[i].Date))
		})
	case SortNameAsc:
		coll := collate.New(language.Und)
		sort.Slice(out, func(i, j int) bool {
			return coll.CompareString(out[i].Name, out[j].Name) < 0
		})
	case SortNameDesc:
		coll := collate.New(language.Und)
		sort.Slice(out, func(i, j int) bool {
			return coll.CompareString(out[j].Name, out[i].Name) < 0
		})
	case SortVenueAsc:
		coll := collate.New(language.Und)
		sort.Slice(out, func(i, j int) bool {
			return coll.CompareString(out[i].Venue, out[j].Venue) < 0
		})
	default:
		log.Debugf("Sort called with unknown key %q, keeping input order", key)
	}
	return out
}
