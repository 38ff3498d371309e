package pagination

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// Coordinator owns the current filter and the authoritative generation counter.
// Each filter change starts a new chain; only the newest generation may publish.
type Coordinator struct {
	filter     models.FilterState
	generation uint64
	driver     *Driver
	agg        *aggregator.Aggregator
}

// NewCoordinator creates a coordinator. No chain runs until SetFilter or Refresh.
func NewCoordinator(driver *Driver, agg *aggregator.Aggregator, initial models.FilterState) *Coordinator {
	return &Coordinator{
		filter: initial,
		driver: driver,
		agg:    agg,
	}
}

// SetFilter stores f and starts a new chain for it
func (c *Coordinator) SetFilter(f models.FilterState) tea.Cmd {
	c.filter = f
	c.generation++
	return c.driver.Start(c.generation, f)
}

// Refresh restarts the chain for the current filter
func (c *Coordinator) Refresh() tea.Cmd {
	return c.SetFilter(c.filter)
}

// Update routes pagination messages to the driver
func (c *Coordinator) Update(msg tea.Msg) tea.Cmd {
	return c.driver.Update(msg)
}

// Filter returns the current filter
func (c *Coordinator) Filter() models.FilterState {
	return c.filter
}

// Generation returns the current generation
func (c *Coordinator) Generation() uint64 {
	return c.generation
}

// Phase returns the phase of the current chain
func (c *Coordinator) Phase() Phase {
	return c.driver.Phase()
}

// Loading reports whether the current chain is still fetching
func (c *Coordinator) Loading() bool {
	return c.driver.Phase() == PhaseFetching
}

// Snapshot returns the aggregator's current snapshot
func (c *Coordinator) Snapshot() aggregator.Snapshot {
	return c.agg.Snapshot()
}
