/*
Package places talks to the geocoding API and normalizes its raw records into
the small, display-ready suggestions the autocomplete dropdown works with.

Raw geocoding output is messy: records describe streets, buildings and whole
regions alongside actual localities, and address blocks are routinely missing
fields. Normalize keeps only records that plausibly represent a city, town or
village and drops anything it cannot derive both a name and a country for.
*/
package places

import (
	"strings"
)

// Address is the structured address block of a geocoding record.
// Every field is optional.
type Address struct {
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// GeoRecord is one raw geocoding result.
type GeoRecord struct {
	Type        string  `json:"type,omitempty"`
	Class       string  `json:"class,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
	Address     Address `json:"address"`
}

// Suggestion is a normalized locality candidate. Name and Country are always
// non-empty on anything Normalize returns.
type Suggestion struct {
	Name        string
	FullName    string
	Country     string
	CountryCode string
}

// isLocality reports whether a record represents a city, town or village,
// either by its category field or by its address carrying one of those.
func isLocality(r GeoRecord) bool {
	switch r.Type {
	case "city", "town", "village":
		return true
	}
	switch r.Class {
	case "city", "town", "village":
		return true
	}
	return r.Address.City != "" || r.Address.Town != "" || r.Address.Village != ""
}

// localityName picks the best available locality name: city, then town, then
// village, then the first comma-delimited segment of the display string.
func localityName(r GeoRecord) string {
	switch {
	case r.Address.City != "":
		return r.Address.City
	case r.Address.Town != "":
		return r.Address.Town
	case r.Address.Village != "":
		return r.Address.Village
	}
	if seg, _, found := strings.Cut(r.DisplayName, ","); found {
		return strings.TrimSpace(seg)
	}
	return strings.TrimSpace(r.DisplayName)
}

// Normalize turns raw geocoding records into at most max suggestions.
// Upstream order is preserved, there is no re-ranking. Records that are not
// localities, or that lack a derivable name or country, are dropped.
func Normalize(records []GeoRecord, max int) []Suggestion {
	var out []Suggestion
	for _, r := range records {
		if !isLocality(r) {
			continue
		}
		name := localityName(r)
		if name == "" || r.Address.Country == "" {
			continue
		}
		out = append(out, Suggestion{
			Name:        name,
			FullName:    r.DisplayName,
			Country:     r.Address.Country,
			CountryCode: strings.ToUpper(r.Address.CountryCode),
		})
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}
