package dashboard

import "context"

// FeedRepository fetches today's event data from the spreadsheet web app.
type FeedRepository interface {
	// FetchToday returns the decoded feed. Transport failures and malformed
	// bodies yield the zero Feed and an error for the caller to log; readers
	// only ever see "no data".
	FetchToday(ctx context.Context) (Feed, error)
}
