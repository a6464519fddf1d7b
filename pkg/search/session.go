package search

import (
	"errors"
	"sync"

	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/query"
	"github.com/charmbracelet/log"
)

// View is everything the presentation layer needs for one render: the page
// slice plus counts, navigation state and message/error text. It is a pure
// projection; Session recomputes it from scratch on every call.
type View struct {
	Items        []events.Record
	TotalResults int
	Page         int
	TotalPages   int
	Window       []int
	SortKey      events.SortKey
	PageSize     int
	Message      string // informational (empty result set)
	Error        string // failure text, mutually exclusive with results
}

// Session owns the query and the fetched result set together with the sort
// and pagination state. Result application is ticketed: if two submissions
// overlap, only the one started last may land (last write wins, a slow older
// response cannot clobber a newer one).
type Session struct {
	mu sync.Mutex

	query     query.Query
	results   []events.Record
	resultSeq uint64

	sortKey  events.SortKey
	pageSize int
	page     int

	message string
	errText string
}

// NewSession starts a session with the given defaults.
func NewSession(sortKey events.SortKey, pageSize int) *Session {
	return &Session{
		sortKey:  sortKey,
		pageSize: pageSize,
		page:     1,
	}
}

// Query returns a copy of the current search criteria.
func (s *Session) Query() query.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// EditQuery mutates the search criteria under the session lock.
func (s *Session) EditQuery(fn func(*query.Query)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.query)
}

// Begin marks the start of a submission and returns its ticket. The matching
// Apply call must present the same ticket; a stale ticket is dropped.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resultSeq++
	return s.resultSeq
}

// Apply installs the outcome of a submission. A new result set, an API
// failure and an empty set each land differently per the error taxonomy.
// Either way the page resets to 1.
func (s *Session) Apply(ticket uint64, result *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.resultSeq {
		staleResultsDroppedTotal.Inc()
		log.Debugf("Dropping stale search result (ticket %d, newest %d)", ticket, s.resultSeq)
		return
	}

	s.page = 1
	s.message = ""
	s.errText = ""

	if err != nil {
		// Failure clears any partial result list.
		s.results = nil
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.errText = apiErr.Detail
		} else {
			s.errText = err.Error()
		}
		return
	}

	s.results = result.Events
	s.message = result.Message
}

// SetSortKey changes the ordering. The page is kept: reordering does not
// change how many pages there are.
func (s *Session) SetSortKey(k events.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = k
}

// SetPageSize switches the page size and resets to page 1.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < 0 {
		size = events.PageSizeAll
	}
	s.pageSize = size
	s.page = 1
}

// SetPage navigates to page p, clamped to [1, totalPages].
func (s *Session) SetPage(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := totalPages(len(s.results), s.pageSize)
	if total < 1 {
		total = 1
	}
	if p < 1 {
		p = 1
	}
	if p > total {
		p = total
	}
	s.page = p
}

// View recomputes the sorted, paginated projection of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := events.Sort(s.results, s.sortKey)
	pg := events.Paginate(sorted, s.pageSize, s.page)

	return View{
		Items:        pg.Items,
		TotalResults: len(s.results),
		Page:         s.page,
		TotalPages:   pg.TotalPages,
		Window:       events.PageWindow(s.page, pg.TotalPages),
		SortKey:      s.sortKey,
		PageSize:     s.pageSize,
		Message:      s.message,
		Error:        s.errText,
	}
}

func totalPages(n, size int) int {
	if size <= events.PageSizeAll {
		return 1
	}
	return (n + size - 1) / size
}
