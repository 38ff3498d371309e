// Package pagination follows continuation tokens until a filter's data set is
// exhausted. Every fetch and throttle result is stamped with the generation it
// belongs to; results from a superseded generation are dropped instead of
// cancelling the I/O that produced them.
package pagination

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
	"github.com/ngmaloney/portman-terminal/internal/portman"
)

const (
	// DefaultPageDelay throttles consecutive page requests
	DefaultPageDelay = 300 * time.Millisecond

	// DefaultFetchTimeout bounds a single page request
	DefaultFetchTimeout = 30 * time.Second
)

// Phase is the lifecycle state of a chain
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseComplete
	PhaseFailed
	PhaseSuperseded
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	case PhaseSuperseded:
		return "superseded"
	default:
		return "idle"
	}
}

// Terminal reports whether no further fetches will be made in this phase
func (p Phase) Terminal() bool {
	return p == PhaseComplete || p == PhaseFailed || p == PhaseSuperseded
}

// Chain is the sequence of fetches belonging to one generation
type Chain struct {
	Generation uint64
	Filter     models.FilterState
	Token      string
	Phase      Phase
	Pages      int
	Err        error
	StartedAt  time.Time
}

// PageFetchedMsg carries the result of one page request
type PageFetchedMsg struct {
	Generation uint64
	Token      string
	Page       *models.Page
	Err        error
}

// NextPageMsg fires when the throttle delay before the next request has elapsed
type NextPageMsg struct {
	Generation uint64
	Token      string
}

// Driver runs one chain at a time against a PageFetcher, merging pages into
// the aggregator. It must only be used from the goroutine that owns the event loop.
type Driver struct {
	fetcher portman.PageFetcher
	agg     *aggregator.Aggregator
	delay   time.Duration
	timeout time.Duration
	chain   *Chain
	prev    *Chain
}

// DriverOption configures a Driver
type DriverOption func(*Driver)

// WithPageDelay sets the pause between consecutive pages
func WithPageDelay(d time.Duration) DriverOption {
	return func(dr *Driver) { dr.delay = d }
}

// WithFetchTimeout sets the per-request timeout
func WithFetchTimeout(d time.Duration) DriverOption {
	return func(dr *Driver) {
		if d > 0 {
			dr.timeout = d
		}
	}
}

// NewDriver creates a driver that merges into agg
func NewDriver(fetcher portman.PageFetcher, agg *aggregator.Aggregator, opts ...DriverOption) *Driver {
	d := &Driver{
		fetcher: fetcher,
		agg:     agg,
		delay:   DefaultPageDelay,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Chain returns a copy of the current chain, or nil before the first start
func (d *Driver) Chain() *Chain {
	if d.chain == nil {
		return nil
	}
	c := *d.chain
	return &c
}

// Previous returns a copy of the chain replaced by the last Start, or nil
func (d *Driver) Previous() *Chain {
	if d.prev == nil {
		return nil
	}
	c := *d.prev
	return &c
}

// Phase returns the phase of the current chain
func (d *Driver) Phase() Phase {
	if d.chain == nil {
		return PhaseIdle
	}
	return d.chain.Phase
}

// Start supersedes any running chain and returns the command for the first page
func (d *Driver) Start(gen uint64, filter models.FilterState) tea.Cmd {
	if d.chain != nil && !d.chain.Phase.Terminal() {
		log.Printf("chain %d superseded by %d after %d pages", d.chain.Generation, gen, d.chain.Pages)
		d.chain.Phase = PhaseSuperseded
	}
	d.prev = d.chain

	d.chain = &Chain{
		Generation: gen,
		Filter:     filter,
		Phase:      PhaseFetching,
		StartedAt:  time.Now(),
	}
	d.agg.Reset(gen)

	log.Printf("chain %d started (%s .. %s)", gen, models.FormatDate(filter.Start), models.FormatDate(filter.End))
	return d.fetch(gen, filter, "")
}

// Update handles driver messages and returns the follow-up command, if any.
// Other messages are ignored.
func (d *Driver) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PageFetchedMsg:
		return d.handlePage(msg)
	case NextPageMsg:
		return d.handleNext(msg)
	}
	return nil
}

// active reports whether gen is the running chain
func (d *Driver) active(gen uint64) bool {
	return d.chain != nil && d.chain.Generation == gen && d.chain.Phase == PhaseFetching
}

func (d *Driver) handlePage(msg PageFetchedMsg) tea.Cmd {
	if !d.active(msg.Generation) {
		log.Printf("dropping page for stale chain %d", msg.Generation)
		return nil
	}
	c := d.chain

	if msg.Err != nil {
		log.Printf("chain %d failed on page %d: %v", c.Generation, c.Pages+1, msg.Err)
		c.Phase = PhaseFailed
		c.Err = msg.Err
		d.agg.MarkFailed(c.Generation, aggregator.ErrorNetwork)
		return nil
	}

	page := msg.Page
	if page == nil {
		page = &models.Page{}
	}
	d.agg.Merge(c.Generation, *page)
	c.Pages++

	switch {
	case page.Malformed:
		log.Printf("chain %d: unreadable next link %q, treating as complete", c.Generation, page.NextLink)
		c.Phase = PhaseComplete
		d.agg.MarkComplete(c.Generation, aggregator.ErrorMalformedContinuation)
		return nil
	case page.NextToken == "":
		log.Printf("chain %d complete: %d pages in %s", c.Generation, c.Pages, time.Since(c.StartedAt).Round(time.Millisecond))
		c.Phase = PhaseComplete
		d.agg.MarkComplete(c.Generation, aggregator.ErrorNone)
		return nil
	}

	c.Token = page.NextToken
	return d.throttle(c.Generation, page.NextToken)
}

func (d *Driver) handleNext(msg NextPageMsg) tea.Cmd {
	if !d.active(msg.Generation) {
		return nil
	}
	return d.fetch(msg.Generation, d.chain.Filter, msg.Token)
}

func (d *Driver) throttle(gen uint64, token string) tea.Cmd {
	if d.delay <= 0 {
		return func() tea.Msg {
			return NextPageMsg{Generation: gen, Token: token}
		}
	}
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return NextPageMsg{Generation: gen, Token: token}
	})
}

// fetch captures everything it needs so the command never reads driver state
func (d *Driver) fetch(gen uint64, filter models.FilterState, token string) tea.Cmd {
	fetcher := d.fetcher
	timeout := d.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := fetcher.FetchPage(ctx, filter, token)
		return PageFetchedMsg{Generation: gen, Token: token, Page: page, Err: err}
	}
}
