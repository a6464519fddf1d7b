package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/places"
	"github.com/bastiangx/eventserve/pkg/query"
	"github.com/bastiangx/eventserve/pkg/search"
	"github.com/bastiangx/eventserve/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for the search front-end core. Requests arrive as
// msgpack frames on stdin; responses and suggestion pushes go to stdout.
type Server struct {
	engine   *suggest.Engine
	session  *search.Session
	searcher *search.Client

	dec *msgpack.Decoder

	writeMu sync.Mutex
	enc     *msgpack.Encoder

	inputMu     sync.Mutex
	lastInputID string
}

// NewServer creates a new core server using stdin/stdout for IPC.
func NewServer(engine *suggest.Engine, session *search.Session, searcher *search.Client) *Server {
	return newServer(engine, session, searcher, os.Stdin, os.Stdout)
}

func newServer(engine *suggest.Engine, session *search.Session, searcher *search.Client, r io.Reader, w io.Writer) *Server {
	s := &Server{
		engine:   engine,
		session:  session,
		searcher: searcher,
		dec:      msgpack.NewDecoder(r),
		enc:      msgpack.NewEncoder(w),
	}

	// Suggestion lists land asynchronously; push them tagged with the
	// newest input request's ID.
	engine.OnNotify(func(list []places.Suggestion, visible bool) {
		s.pushSuggestions(list, visible)
	})

	return s
}

// Start begins listening for IPC requests until stdin closes.
func (s *Server) Start() error {
	log.Debug("Starting core server.")

	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// A framing error is unrecoverable: the decoder cannot resync.
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request.
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "input":
		s.handleInput(request)
	case "pick":
		s.handlePick(request)
	case "hide":
		s.engine.Dismiss()
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	case "query":
		s.handleQuery(request)
	case "search":
		s.handleSearch(request)
	case "sort":
		s.session.SetSortKey(events.ParseSortKey(request.Key))
		s.sendView(request.ID, time.Now())
	case "size":
		s.handleSize(request)
	case "page":
		s.session.SetPage(request.Page)
		s.sendView(request.ID, time.Now())
	case "view":
		s.sendView(request.ID, time.Now())
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleInput feeds one keystroke to the engine. The ack is immediate; the
// resulting suggestion list is pushed later under this request's ID.
func (s *Server) handleInput(request Request) {
	s.inputMu.Lock()
	s.lastInputID = request.ID
	s.inputMu.Unlock()

	s.engine.OnInput(request.Text)
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

func (s *Server) handlePick(request Request) {
	var picked places.Suggestion
	var ok bool
	s.session.EditQuery(func(q *query.Query) {
		picked, ok = s.engine.Select(request.Index, q)
	})
	if !ok {
		s.sendError(request.ID, fmt.Sprintf("No suggestion at index %d", request.Index), 404)
		return
	}

	log.Debugf("Picked suggestion %q (%s)", picked.Name, picked.CountryCode)
	q := s.session.Query()
	s.send(QueryResponse{
		ID:      request.ID,
		Status:  "ok",
		City:    q.City,
		Country: q.Country,
		Keyword: q.Keyword,
	})
}

func (s *Server) handleQuery(request Request) {
	s.session.EditQuery(func(q *query.Query) {
		q.City = request.City
		q.Country = request.Country
		q.Keyword = request.Keyword
		q.Normalize()
	})

	q := s.session.Query()
	s.send(QueryResponse{
		ID:      request.ID,
		Status:  "ok",
		City:    q.City,
		Country: q.Country,
		Keyword: q.Keyword,
	})
}

// handleSearch submits the current query. Validation failures never reach
// the network; other failures land in the view's error text.
func (s *Server) handleSearch(request Request) {
	start := time.Now()

	q := s.session.Query()
	if err := q.Validate(); err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}

	ticket := s.session.Begin()
	result, err := s.searcher.Search(context.Background(), q)
	s.session.Apply(ticket, result, err)

	s.sendView(request.ID, start)
}

func (s *Server) handleSize(request Request) {
	size, err := events.ParsePageSize(request.Size)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		return
	}
	s.session.SetPageSize(size)
	s.sendView(request.ID, time.Now())
}

// sendView sends the current recomputed projection.
func (s *Server) sendView(id string, start time.Time) {
	view := s.session.View()

	rows := make([]EventPayload, 0, len(view.Items))
	for _, r := range view.Items {
		rows = append(rows, EventPayload{
			ID:       r.ID,
			Name:     r.Name,
			Date:     r.Date,
			Venue:    r.Venue,
			Location: r.Location,
			URL:      r.URL,
			Image:    r.Image,
		})
	}

	sizeLabel := "all"
	if view.PageSize > 0 {
		sizeLabel = strconv.Itoa(view.PageSize)
	}

	s.send(ViewResponse{
		ID:         id,
		Events:     rows,
		Total:      view.TotalResults,
		Page:       view.Page,
		TotalPages: view.TotalPages,
		Window:     view.Window,
		SortKey:    string(view.SortKey),
		PageSize:   sizeLabel,
		Message:    view.Message,
		Error:      view.Error,
		TimeTaken:  time.Since(start).Milliseconds(),
	})
}

// pushSuggestions sends an unsolicited suggestion update for the newest
// input request.
func (s *Server) pushSuggestions(list []places.Suggestion, visible bool) {
	s.inputMu.Lock()
	id := s.lastInputID
	s.inputMu.Unlock()

	payload := make([]SuggestionPayload, 0, len(list))
	for _, sg := range list {
		payload = append(payload, SuggestionPayload{
			Name:        sg.Name,
			FullName:    sg.FullName,
			Country:     sg.Country,
			CountryCode: sg.CountryCode,
		})
	}

	s.send(SuggestResponse{
		ID:          id,
		Suggestions: payload,
		Visible:     visible,
		Count:       len(payload),
	})
}

// send marshals the given response and writes it to the client.
func (s *Server) send(response interface{}) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
