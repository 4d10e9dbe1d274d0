package ports

import "context"

// SiteService assembles read-only page data for the public site.
type SiteService interface {
	// BuildPageContext returns the named query results for a data page,
	// or domain.ErrPageNotFound for pages outside the fixed set. Only
	// visible rows are returned, most recent first.
	BuildPageContext(ctx context.Context, page string) (map[string]any, error)
}
