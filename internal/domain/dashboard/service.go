package dashboard

import "context"

// DashboardService aggregates the roster with today's feed into view-ready
// rows, refreshed on the slow tick.
type DashboardService interface {
	// Refresh re-fetches the feed, recomputes the aggregation and notifies
	// live subscribers. Stale in-flight fetches lose by issuance order.
	Refresh(ctx context.Context) error

	// Snapshot returns the cached aggregation, filtered and ordered.
	Snapshot(ctx context.Context, q Query) Snapshot
}
