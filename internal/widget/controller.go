package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/skycast/widget/internal/domain"
	"github.com/skycast/widget/internal/service"
)

var (
	// ErrEmptyQuery is returned for blank input; no request is made
	ErrEmptyQuery = errors.New("widget: city name is empty")

	// ErrStale is returned to a search that finished after a newer one started.
	// Its result is discarded.
	ErrStale = errors.New("widget: superseded by a newer search")
)

// Controller owns the widget state: query text, unit preference and the last outcome.
// The newest search always decides the state; older completions are dropped.
type Controller struct {
	fetcher service.Fetcher
	logger  *slog.Logger

	mu     sync.Mutex
	query  string
	unit   domain.Unit
	state  State
	latest ulid.ULID
}

// NewController creates a controller in the Idle state
func NewController(fetcher service.Fetcher, unit domain.Unit, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		fetcher: fetcher,
		logger:  logger,
		unit:    unit,
		state:   Idle{},
	}
}

// Search trims query and fetches its weather. Blank input returns ErrEmptyQuery
// and leaves the state untouched. Otherwise the returned error is the fetch error,
// or ErrStale when a newer search started meanwhile.
func (c *Controller) Search(ctx context.Context, query string) (State, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return c.State(), ErrEmptyQuery
	}

	c.mu.Lock()
	ticket := ulid.Make()
	c.query = q
	c.latest = ticket
	c.state = Loading{Query: q}
	c.mu.Unlock()

	log := c.logger.With("ticket", ticket.String(), "city", q)
	log.Debug("search started")

	var next State
	record, err := c.fetcher.FetchWeather(ctx, q)
	if err != nil {
		next = Failure{Kind: domain.Classify(err), Err: err}
	} else {
		next = Success{Record: record}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest != ticket {
		log.Debug("search result dropped", "reason", "stale")
		return next, ErrStale
	}
	c.state = next

	if err != nil {
		log.Warn("search failed", "kind", domain.Classify(err).String(), "error", err)
		return next, err
	}
	log.Debug("search succeeded")
	return next, nil
}

// Refresh repeats the last submitted search
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	return c.Search(ctx, q)
}

// ToggleUnit flips the display unit and returns the new one.
// The held record is not touched.
func (c *Controller) ToggleUnit() domain.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unit = c.unit.Toggle()
	return c.unit
}

// SetUnit sets the display unit
func (c *Controller) SetUnit(u domain.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unit = u
}

// Unit returns the display unit
func (c *Controller) Unit() domain.Unit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unit
}

// Query returns the last submitted query
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View renders the current state in the current unit
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Render(c.state, c.unit)
}
