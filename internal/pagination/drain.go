package pagination

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/portman-terminal/internal/aggregator"
	"github.com/ngmaloney/portman-terminal/internal/models"
)

// Drain runs cmd and every follow-up command on the calling goroutine until the
// chain settles. It is the event loop for callers without a tea.Program.
func Drain(ctx context.Context, c *Coordinator, cmd tea.Cmd) error {
	for cmd != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := cmd()
		if msg == nil {
			return nil
		}
		cmd = c.Update(msg)
	}
	return nil
}

// Load starts a chain for filter, drains it and returns the settled snapshot
func Load(ctx context.Context, c *Coordinator, filter models.FilterState) (aggregator.Snapshot, error) {
	if err := Drain(ctx, c, c.SetFilter(filter)); err != nil {
		return c.Snapshot(), err
	}
	return c.Snapshot(), nil
}
