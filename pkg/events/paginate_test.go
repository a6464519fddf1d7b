package events

import (
	"fmt"
	"testing"
)

func makeRecords(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: fmt.Sprintf("ev-%03d", i)}
	}
	return out
}

func TestPaginateThirtyPerPage(t *testing.T) {
	records := makeRecords(75)

	p1 := Paginate(records, 30, 1)
	if p1.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", p1.TotalPages)
	}
	if p1.StartIndex != 0 || p1.EndIndex != 30 || len(p1.Items) != 30 {
		t.Errorf("page 1 = [%d,%d) with %d items", p1.StartIndex, p1.EndIndex, len(p1.Items))
	}

	p3 := Paginate(records, 30, 3)
	if p3.StartIndex != 60 || p3.EndIndex != 75 || len(p3.Items) != 15 {
		t.Errorf("page 3 = [%d,%d) with %d items", p3.StartIndex, p3.EndIndex, len(p3.Items))
	}
	if p3.Items[0].ID != "ev-060" {
		t.Errorf("page 3 starts with %s", p3.Items[0].ID)
	}
}

func TestPaginateAll(t *testing.T) {
	records := makeRecords(42)
	p := Paginate(records, PageSizeAll, 1)

	if p.TotalPages != 1 || p.StartIndex != 0 || p.EndIndex != 42 {
		t.Errorf("all: got pages=%d span=[%d,%d)", p.TotalPages, p.StartIndex, p.EndIndex)
	}
	if len(p.Items) != 42 {
		t.Errorf("all: %d items", len(p.Items))
	}
}

func TestPaginateEmptySet(t *testing.T) {
	p := Paginate(nil, 30, 1)
	if p.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0 for empty set", p.TotalPages)
	}
	if len(p.Items) != 0 {
		t.Errorf("expected empty page, got %d items", len(p.Items))
	}
}

func TestPaginateExactMultiple(t *testing.T) {
	p := Paginate(makeRecords(60), 30, 2)
	if p.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", p.TotalPages)
	}
	if p.StartIndex != 30 || p.EndIndex != 60 {
		t.Errorf("page 2 span = [%d,%d)", p.StartIndex, p.EndIndex)
	}
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"all", PageSizeAll, false},
		{"ALL", PageSizeAll, false},
		{"", PageSizeAll, false},
		{"30", 30, false},
		{" 10 ", 10, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"ten", 0, true},
	}

	for _, tc := range cases {
		got, err := ParsePageSize(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePageSize(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePageSize(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePageSize(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 0, nil},
		{1, 1, []int{1}},
		{2, 3, []int{1, 2, 3}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{4, 10, []int{2, 3, 4, 5, 6}},
		{7, 10, []int{5, 6, 7, 8, 9}},
		{8, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
	}

	for _, tc := range cases {
		got := PageWindow(tc.current, tc.total)
		if len(got) != len(tc.want) {
			t.Errorf("PageWindow(%d,%d) = %v, want %v", tc.current, tc.total, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("PageWindow(%d,%d) = %v, want %v", tc.current, tc.total, got, tc.want)
				break
			}
		}
	}
}
