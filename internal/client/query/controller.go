// Package query implements the debounced query controller: it translates
// freeform, frequently-changing list-view input (search text, sort column,
// page) into a minimal, ordered sequence of remote fetches.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/avelichko/snipcli/internal/logging"
)

// SortDirection orders a sorted column.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Descriptor is the tuple of parameters that fully determines a list fetch.
// Any change other than Page resets Page to 0.
type Descriptor struct {
	Page      int
	Size      int
	Sort      string
	Direction SortDirection
	Search    string
}

// Page is one immutable fetch result. It is superseded wholesale by the next
// successful fetch.
type Page[T any] struct {
	Items         []T
	TotalPages    int
	TotalElements int64
}

// Fetcher performs one remote fetch for the given descriptor.
type Fetcher[T any] func(ctx context.Context, d Descriptor) (Page[T], error)

// Options configures a Controller.
type Options[T any] struct {
	// Debounce is the quiet period before a search edit becomes effective.
	Debounce time.Duration
	// PageSize is fixed for the lifetime of the controller.
	PageSize int
	// Sort and Direction form the initial ordering.
	Sort      string
	Direction SortDirection
	// OnUpdate receives every applied page. OnError receives every fetch
	// failure; the previously displayed page stays intact.
	OnUpdate func(Page[T])
	OnError  func(error)
	Logger   logging.Logger
}

// Controller owns the descriptor and serializes its effects: every effective
// descriptor change issues exactly one fetch, and only the result of the most
// recently issued fetch is ever applied. Stale responses are dropped
// silently — an older response never overwrites a newer one, regardless of
// arrival order. There is no hard cancellation of in-flight calls; staleness
// filtering stands in for it. Debounce timers, by contrast, are truly reset
// on every keystroke.
type Controller[T any] struct {
	mu      sync.Mutex
	desc    Descriptor
	pending string
	timer   *time.Timer
	seq     uint64
	page    *Page[T]

	debounce time.Duration
	fetch    Fetcher[T]
	onUpdate func(Page[T])
	onError  func(error)
	log      logging.Logger
}

const defaultDebounce = 500 * time.Millisecond

func NewController[T any](fetch Fetcher[T], opts Options[T]) *Controller[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	if opts.Direction == "" {
		opts.Direction = Desc
	}
	return &Controller[T]{
		desc: Descriptor{
			Size:      opts.PageSize,
			Sort:      opts.Sort,
			Direction: opts.Direction,
		},
		debounce: opts.Debounce,
		fetch:    fetch,
		onUpdate: opts.OnUpdate,
		onError:  opts.OnError,
		log:      opts.Logger,
	}
}

// Start issues the initial fetch for the current descriptor.
func (c *Controller[T]) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueLocked(ctx)
}

// Refresh re-fetches the current descriptor, e.g. after a mutating action.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issueLocked(ctx)
}

// SetSearchText records the new text immediately for display and folds it
// into the effective descriptor only after a quiet period with no further
// edits (trailing-edge debounce). The timer restarts on every call, so the
// final keystroke's value is never lost.
func (c *Controller[T]) SetSearchText(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.applyPendingSearch(ctx)
	})
}

func (c *Controller[T]) applyPendingSearch(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == c.desc.Search {
		return
	}
	c.desc.Search = c.pending
	c.desc.Page = 0
	c.issueLocked(ctx)
}

// SetSort orders by field. Selecting the current sort field flips the
// direction; selecting a new field sorts descending (most significant
// first). Either way the view returns to the first page.
func (c *Controller[T]) SetSort(ctx context.Context, field string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if field == c.desc.Sort {
		if c.desc.Direction == Asc {
			c.desc.Direction = Desc
		} else {
			c.desc.Direction = Asc
		}
	} else {
		c.desc.Sort = field
		c.desc.Direction = Desc
	}
	c.desc.Page = 0
	c.issueLocked(ctx)
}

// SetPage moves to the given page, clamped against the last known page count
// rather than rejected.
func (c *Controller[T]) SetPage(ctx context.Context, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if c.page != nil && c.page.TotalPages > 0 && index > c.page.TotalPages-1 {
		index = c.page.TotalPages - 1
	}
	if index == c.desc.Page {
		return
	}
	c.desc.Page = index
	c.issueLocked(ctx)
}

// Descriptor returns the current effective descriptor.
func (c *Controller[T]) Descriptor() Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.desc
}

// PendingSearch returns the search text as typed, which may not yet be part
// of the effective descriptor.
func (c *Controller[T]) PendingSearch() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Page returns the last applied fetch result, if any.
func (c *Controller[T]) Page() (Page[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return Page[T]{}, false
	}
	return *c.page, true
}

// Close cancels a pending debounce timer. In-flight fetches are not
// interrupted; their results are dropped by the staleness check.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
}

// issueLocked starts one fetch for the current descriptor. The fetch is
// tagged with its issue number; at resolution time the tag is compared with
// the newest issue number and anything older is discarded, which makes the
// applied results follow descriptor-issue order rather than response-arrival
// order. Callers must hold c.mu.
func (c *Controller[T]) issueLocked(ctx context.Context) {
	c.seq++
	id := c.seq
	d := c.desc

	go func() {
		page, err := c.fetch(ctx, d)

		c.mu.Lock()
		if id != c.seq {
			c.mu.Unlock()
			if c.log != nil {
				c.log.Debug(ctx, "dropping stale fetch result", "issued", id, "current", c.seq)
			}
			return
		}

		if err != nil {
			onError := c.onError
			c.mu.Unlock()
			if c.log != nil {
				c.log.Warn(ctx, "list fetch failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
			return
		}

		c.page = &page
		onUpdate := c.onUpdate
		c.mu.Unlock()

		if onUpdate != nil {
			onUpdate(page)
		}
	}()
}
