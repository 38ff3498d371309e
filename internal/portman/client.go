package portman

import (
	"context"

	"github.com/ngmaloney/portman-terminal/internal/models"
)

// PageFetcher retrieves one page of port calls for a filter
type PageFetcher interface {
	// FetchPage requests the page after token, or the first page when token is empty.
	// The token must be one returned by an earlier page; it is never built or inspected.
	FetchPage(ctx context.Context, filter models.FilterState, token string) (*models.Page, error)
}

// PortCallClient defines the lookups the Portman API offers beyond paging
type PortCallClient interface {
	PageFetcher

	// GetPortCall retrieves a single port call by its ID
	GetPortCall(ctx context.Context, id int64) (*models.PortCall, error)
}
