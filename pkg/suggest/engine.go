/*
Package suggest is the autocomplete core: it debounces keystrokes, runs
place lookups, and keeps the current candidate list race-free under rapid
input.

Two mechanisms carry the whole contract. A single pending timer per engine
implements the debounce: every keystroke cancels the previous timer outright,
so only the last keystroke in a burst ever fires a lookup. A monotonically
increasing ticket tags each accepted keystroke: a lookup result is applied
only if its ticket is still the newest one issued, which silently discards
stale responses no matter how the network reorders them.

Input below the minimum length never reaches the remote source; the list is
cleared immediately, then deliberately refilled from localities picked
earlier in the session when one matches, so the dropdown is not dead on the
first character.
*/
package suggest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/eventserve/pkg/places"
	"github.com/bastiangx/eventserve/pkg/query"
	"github.com/charmbracelet/log"
)

// Source is where suggestions come from; satisfied by *places.Client.
type Source interface {
	Lookup(ctx context.Context, q string) ([]places.GeoRecord, error)
}

// Options tunes the engine. Zero values pick the defaults.
type Options struct {
	Debounce       time.Duration // quiet period after the last keystroke
	MinChars       int           // below this, no remote lookup is issued
	MaxSuggestions int           // exposed list is truncated to this many
}

const (
	defaultDebounce       = 150 * time.Millisecond
	defaultMinChars       = 2
	defaultMaxSuggestions = 6
)

func (o *Options) fill() {
	if o.Debounce <= 0 {
		o.Debounce = defaultDebounce
	}
	if o.MinChars <= 0 {
		o.MinChars = defaultMinChars
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = defaultMaxSuggestions
	}
}

// Engine is the debounced, race-safe suggestion engine.
// All exported methods are safe for concurrent use.
type Engine struct {
	src  Source
	opts Options

	seq atomic.Uint64 // newest issued ticket

	mu          sync.Mutex
	timer       *time.Timer
	suggestions []places.Suggestion
	visible     bool
	recents     *recentIndex

	// onUpdate, when set, is invoked after every visible state change with a
	// snapshot of the list. Used by the IPC server to push updates.
	onUpdate func([]places.Suggestion, bool)

	ctx    context.Context
	cancel context.CancelFunc
}

// NewEngine builds an engine over the given source.
func NewEngine(src Source, opts Options) *Engine {
	opts.fill()
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		src:     src,
		opts:    opts,
		recents: newRecentIndex(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// OnNotify registers a push hook for state changes. Must be called before the
// first OnInput.
func (e *Engine) OnNotify(fn func([]places.Suggestion, bool)) {
	e.onUpdate = fn
}

// OnInput handles one keystroke's worth of input text. Fire and forget: any
// lookup happens after the debounce quiet period, on a separate goroutine.
func (e *Engine) OnInput(text string) {
	text = strings.TrimSpace(text)

	e.mu.Lock()
	// Every keystroke supersedes whatever was in flight. Bumped under the
	// lock so the timer left armed always belongs to the newest ticket.
	ticket := e.seq.Add(1)
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	if utf8.RuneCountInString(text) < e.opts.MinChars {
		// Too short for a remote lookup. Recently picked localities can
		// still match locally so the dropdown is not dead on char one.
		e.suggestions = nil
		e.visible = false
		if text != "" {
			if local := e.recents.match(text, e.opts.MaxSuggestions); len(local) > 0 {
				e.suggestions = local
				e.visible = true
			}
		}
		snapshot, visible := e.snapshotLocked()
		e.mu.Unlock()
		e.notify(snapshot, visible)
		return
	}

	e.timer = time.AfterFunc(e.opts.Debounce, func() {
		e.fire(ticket, text)
	})
	e.mu.Unlock()
}

// fire runs one lookup for the given ticket and applies the result only if
// the ticket is still the newest issued.
func (e *Engine) fire(ticket uint64, text string) {
	if ticket != e.seq.Load() {
		// Superseded between timer expiry and now.
		return
	}

	lookupsTotal.Inc()
	records, err := e.src.Lookup(e.ctx, text)

	e.mu.Lock()
	if ticket != e.seq.Load() {
		staleDroppedTotal.Inc()
		e.mu.Unlock()
		log.Debugf("Dropping stale lookup result for %q (ticket %d)", text, ticket)
		return
	}

	if err != nil {
		// Lookup failure is non-fatal and silent: empty list, no error shown.
		lookupFailuresTotal.Inc()
		e.suggestions = nil
		e.visible = false
		e.mu.Unlock()
		log.Debugf("Place lookup for %q failed: %v", text, err)
		e.notify(nil, false)
		return
	}

	list := places.Normalize(records, e.opts.MaxSuggestions)
	e.suggestions = list
	e.visible = len(list) > 0
	snapshot, visible := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snapshot, visible)
}

// Suggestions returns a copy of the current candidate list.
func (e *Engine) Suggestions() []places.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()
	snapshot, _ := e.snapshotLocked()
	return snapshot
}

// Visible reports whether the dropdown should be shown.
func (e *Engine) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// Select applies suggestion i to the query: Name replaces City and, when the
// record carries one, CountryCode replaces Country. The list is cleared and
// hidden, and the pick is remembered in the recents index.
func (e *Engine) Select(i int, q *query.Query) (places.Suggestion, bool) {
	e.mu.Lock()
	if i < 0 || i >= len(e.suggestions) {
		e.mu.Unlock()
		return places.Suggestion{}, false
	}
	s := e.suggestions[i]

	q.City = s.Name
	if s.CountryCode != "" {
		q.Country = s.CountryCode
	}

	e.suggestions = nil
	e.visible = false
	e.seq.Add(1) // anything still in flight is now stale
	e.recents.add(s)
	e.mu.Unlock()

	e.notify(nil, false)
	return s, true
}

// Dismiss hides the dropdown without touching query values, the "clicked
// elsewhere" path.
func (e *Engine) Dismiss() {
	e.mu.Lock()
	e.visible = false
	snapshot, visible := e.snapshotLocked()
	e.mu.Unlock()
	e.notify(snapshot, visible)
}

// Close cancels any in-flight lookup and stops the pending timer.
func (e *Engine) Close() {
	e.cancel()
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()
}

func (e *Engine) snapshotLocked() ([]places.Suggestion, bool) {
	if len(e.suggestions) == 0 {
		return nil, e.visible
	}
	out := make([]places.Suggestion, len(e.suggestions))
	copy(out, e.suggestions)
	return out, e.visible
}

func (e *Engine) notify(list []places.Suggestion, visible bool) {
	if e.onUpdate != nil {
		e.onUpdate(list, visible)
	}
}
