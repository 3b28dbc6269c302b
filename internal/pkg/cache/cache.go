// Package cache stores rendered view data per page path so reads can skip
// the database until a mutation invalidates the page.
package cache

import "context"

// Page paths invalidated by mutations.
const (
	PathDashboard  = "/dashboard"
	PathDailyEntry = "/daily-entry"
	PathAddLaborer = "/laborers/add"
)

// ViewCache keeps one or more variants (for example a date window) per path.
// Invalidate drops every variant of the given paths and bumps their version.
//
// Get returns the version the path was at when it was read. Put stores value
// only if the path is still at that version, so a view built from data read
// before an invalidation is never written back.
type ViewCache interface {
	Get(ctx context.Context, path, variant string, dst any) (hit bool, version int64, err error)
	Put(ctx context.Context, path, variant string, version int64, value any) error
	Invalidate(ctx context.Context, paths ...string) error
}

type noopCache struct{}

// NewNoop returns a cache that never hits.
func NewNoop() ViewCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, string, any) (bool, int64, error) { return false, 0, nil }
func (noopCache) Put(context.Context, string, string, int64, any) error        { return nil }
func (noopCache) Invalidate(context.Context, ...string) error                   { return nil }
