package directory

import "context"

// DirectoryService exposes the cached roster. The cache is refreshed on a
// fixed interval by the refresh scheduler; reads never block on the network.
type DirectoryService interface {
	// Refresh re-fetches the sheet and swaps the cached roster. Stale in-flight
	// fetches lose to newer ones by issuance order.
	Refresh(ctx context.Context) error

	// Roster returns every person currently cached, plus the cache source.
	Roster(ctx context.Context) ([]Person, Source)

	// Teachers returns the roster filtered to non-administrative accounts.
	Teachers(ctx context.Context) []Person

	// FindByUsername looks a person up by login name, case-insensitively.
	FindByUsername(ctx context.Context, username string) (Person, error)
}
