// Package cli handles cmd line input for DBG and testing the suggestion
// engine and result pipeline without a real front-end attached.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/eventserve/internal/logger"
	"github.com/bastiangx/eventserve/pkg/events"
	"github.com/bastiangx/eventserve/pkg/query"
	"github.com/bastiangx/eventserve/pkg/search"
	"github.com/bastiangx/eventserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)

	clilog = logger.New("cli")
)

// InputHandler processes user commands from stdin, driving the suggestion
// engine and the search session the way a front-end would.
type InputHandler struct {
	engine   *suggest.Engine
	session  *search.Session
	searcher *search.Client
	settle   time.Duration // how long to wait for a debounced lookup to land
}

// NewInputHandler handles initialization of the InputHandler with the core pieces
func NewInputHandler(engine *suggest.Engine, session *search.Session, searcher *search.Client, debounce time.Duration) *InputHandler {
	return &InputHandler{
		engine:   engine,
		session:  session,
		searcher: searcher,
		settle:   debounce + 400*time.Millisecond,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleCommand() for processing.
// Loop terminates on EOF or a read error.
func (h *InputHandler) Start() error {
	clilog.Print("eventserve CLI [DBG]")
	clilog.Print("commands: type <text> | pick <n> | hide | city/country/kw <v> | search | sort <key> | size <n|all> | page <n> | next | prev | show | quit")
	reader := bufio.NewReader(os.Stdin)

	for {
		clilog.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.handleCommand(line)
	}
}

// handleCommand processes a single command line.
func (h *InputHandler) handleCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "type":
		h.engine.OnInput(arg)
		// Debounce plus lookup run asynchronously; give them room to land.
		time.Sleep(h.settle)
		h.printSuggestions()
	case "pick":
		n, err := strconv.Atoi(arg)
		if err != nil {
			clilog.Errorf("pick wants an index: %v", err)
			return
		}
		h.session.EditQuery(func(q *query.Query) {
			if picked, ok := h.engine.Select(n, q); ok {
				clilog.Infof("picked %s (%s)", picked.Name, picked.CountryCode)
			} else {
				clilog.Errorf("no suggestion at index %d", n)
			}
		})
		h.printQuery()
	case "hide":
		h.engine.Dismiss()
	case "city":
		h.session.EditQuery(func(q *query.Query) { q.City = arg })
		h.printQuery()
	case "country":
		h.session.EditQuery(func(q *query.Query) { q.Country = strings.ToUpper(arg) })
		h.printQuery()
	case "kw":
		h.session.EditQuery(func(q *query.Query) { q.Keyword = arg })
		h.printQuery()
	case "search":
		h.runSearch()
	case "sort":
		h.session.SetSortKey(events.ParseSortKey(arg))
		h.printView()
	case "size":
		size, err := events.ParsePageSize(arg)
		if err != nil {
			clilog.Errorf("%v", err)
			return
		}
		h.session.SetPageSize(size)
		h.printView()
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			clilog.Errorf("page wants a number: %v", err)
			return
		}
		h.session.SetPage(n)
		h.printView()
	case "next":
		h.session.SetPage(h.session.View().Page + 1)
		h.printView()
	case "prev":
		h.session.SetPage(h.session.View().Page - 1)
		h.printView()
	case "show":
		h.printQuery()
		h.printView()
	default:
		clilog.Errorf("unknown command: %s", cmd)
	}
}

func (h *InputHandler) runSearch() {
	q := h.session.Query()
	if err := q.Validate(); err != nil {
		clilog.Errorf("%v", err)
		return
	}

	start := time.Now()
	ticket := h.session.Begin()
	result, err := h.searcher.Search(context.Background(), q)
	h.session.Apply(ticket, result, err)

	clilog.Debugf("search took %s", time.Since(start))
	h.printView()
}

func (h *InputHandler) printSuggestions() {
	list := h.engine.Suggestions()
	if len(list) == 0 {
		clilog.Print(dimStyle.Render("  (no suggestions)"))
		return
	}
	for i, s := range list {
		clilog.Print(fmt.Sprintf("  [%d] %s, %s (%s)", i, s.Name, s.Country, s.CountryCode))
	}
}

func (h *InputHandler) printQuery() {
	q := h.session.Query()
	clilog.Print(fmt.Sprintf("  city=%q country=%q keyword=%q", q.City, q.Country, q.Keyword))
}

func (h *InputHandler) printView() {
	v := h.session.View()

	if v.Error != "" {
		clilog.Errorf("%s", v.Error)
		return
	}
	if v.Message != "" {
		clilog.Infof("%s", v.Message)
	}

	totalPages := v.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	clilog.Print(headerStyle.Render(fmt.Sprintf("  %d results | page %d/%d | sort %s | window %v",
		v.TotalResults, v.Page, totalPages, v.SortKey, v.Window)))

	for _, r := range v.Items {
		date := r.Date
		if date == "" {
			date = "unknown date"
		}
		clilog.Print(fmt.Sprintf("  %s  %s @ %s", date, r.Name, r.Venue))
	}
}
