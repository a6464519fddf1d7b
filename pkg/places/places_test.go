package places

import "testing"

func TestNormalizeMapsCityRecord(t *testing.T) {
	records := []GeoRecord{
		{
			Type:        "city",
			DisplayName: "Paris, Ile-de-France, France",
			Address: Address{
				City:        "Paris",
				Country:     "France",
				CountryCode: "fr",
			},
		},
	}

	got := Normalize(records, 6)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	s := got[0]
	if s.Name != "Paris" || s.Country != "France" || s.CountryCode != "FR" {
		t.Errorf("got %+v", s)
	}
	if s.FullName != "Paris, Ile-de-France, France" {
		t.Errorf("FullName = %q", s.FullName)
	}
}

func TestNormalizeNamePrecedence(t *testing.T) {
	cases := []struct {
		description string
		record      GeoRecord
		wantName    string
	}{
		{
			"city wins over town and village",
			GeoRecord{Address: Address{City: "Lyon", Town: "T", Village: "V", Country: "France"}},
			"Lyon",
		},
		{
			"town when no city",
			GeoRecord{Address: Address{Town: "Giverny", Village: "V", Country: "France"}},
			"Giverny",
		},
		{
			"village when nothing else",
			GeoRecord{Address: Address{Village: "Oradour", Country: "France"}},
			"Oradour",
		},
		{
			"display name segment as last resort",
			GeoRecord{
				Type:        "town",
				DisplayName: "Bree, Limburg, Belgium",
				Address:     Address{Country: "Belgium"},
			},
			"Bree",
		},
	}

	for _, tc := range cases {
		got := Normalize([]GeoRecord{tc.record}, 6)
		if len(got) != 1 {
			t.Errorf("%s: got %d suggestions, want 1", tc.description, len(got))
			continue
		}
		if got[0].Name != tc.wantName {
			t.Errorf("%s: Name = %q, want %q", tc.description, got[0].Name, tc.wantName)
		}
	}
}

func TestNormalizeDropsNonLocalities(t *testing.T) {
	records := []GeoRecord{
		{Type: "motorway", Class: "highway", DisplayName: "A6, France", Address: Address{Country: "France"}},
		{Type: "house", Class: "building", Address: Address{Country: "France"}},
	}
	if got := Normalize(records, 6); len(got) != 0 {
		t.Errorf("non-locality records survived: %+v", got)
	}
}

func TestNormalizeDropsIncompleteRecords(t *testing.T) {
	records := []GeoRecord{
		// locality but no country at all
		{Type: "city", DisplayName: "Atlantis", Address: Address{City: "Atlantis"}},
		// locality by type, but no way to derive a name
		{Type: "town", Address: Address{Country: "France"}},
	}
	if got := Normalize(records, 6); len(got) != 0 {
		t.Errorf("incomplete records survived: %+v", got)
	}
}

func TestNormalizeTruncatesPreservingOrder(t *testing.T) {
	var records []GeoRecord
	names := []string{"Aa", "Bb", "Cc", "Dd", "Ee", "Ff", "Gg", "Hh"}
	for _, n := range names {
		records = append(records, GeoRecord{Address: Address{City: n, Country: "X"}})
	}

	got := Normalize(records, 6)
	if len(got) != 6 {
		t.Fatalf("got %d suggestions, want 6", len(got))
	}
	for i := 0; i < 6; i++ {
		if got[i].Name != names[i] {
			t.Errorf("position %d: got %q, want %q (upstream order must hold)", i, got[i].Name, names[i])
		}
	}
}
