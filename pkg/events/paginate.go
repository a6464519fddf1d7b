package events

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSizeAll is the page size meaning "everything on one page".
// Any size <= 0 is treated the same way.
const PageSizeAll = 0

// windowSpan is how many page buttons the window widget shows at most.
const windowSpan = 5

// Page is one slice of a sorted result set.
type Page struct {
	Items      []Record
	TotalPages int
	StartIndex int
	EndIndex   int
}

// ParsePageSize converts a user-supplied size ("all" or a positive integer)
// into the internal representation.
func ParsePageSize(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "all" || s == "" {
		return PageSizeAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid page size %q", s)
	}
	return n, nil
}

// Paginate slices a sorted result set into one page. It does not clamp the
// page number itself; callers reset to page 1 whenever the result set or the
// page size changes and clamp on explicit navigation.
//
// A zero-length input yields TotalPages 0 (display layers show it as 1).
func Paginate(sorted []Record, size, page int) Page {
	n := len(sorted)
	if size <= PageSizeAll {
		return Page{Items: sorted, TotalPages: 1, StartIndex: 0, EndIndex: n}
	}

	totalPages := (n + size - 1) / size

	start := (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + size
	if end > n {
		end = n
	}

	return Page{
		Items:      sorted[start:end],
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
	}
}

// PageWindow returns the page numbers a "visible pages" widget should render:
// at most five buttons centered on current, sliding against either boundary.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}

	var first, last int
	switch {
	case total <= windowSpan:
		first, last = 1, total
	case current <= 3:
		first, last = 1, windowSpan
	case current >= total-2:
		first, last = total-windowSpan+1, total
	default:
		first, last = current-2, current+2
	}

	window := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		window = append(window, p)
	}
	return window
}
