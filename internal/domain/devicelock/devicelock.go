// Package devicelock tracks, per device and per calendar day, whether a
// check-in or check-out has already been submitted. The lock is deliberately
// keyed by device rather than person: one phone cannot submit attendance for
// multiple identities in a day, no matter who is logged in.
package devicelock

import (
	"context"
	"time"
)

type Kind string

const (
	KindIn  Kind = "IN"
	KindOut Kind = "OUT"
)

// State is the per-day lock record for one device. A record for a different
// calendar day counts as no lock at all.
type State struct {
	Date       string `json:"date"` // local calendar day, YYYY-MM-DD
	CheckedIn  bool   `json:"in"`
	CheckedOut bool   `json:"out"`
}

// DateKey derives the calendar-day key from a local wall-clock time.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Store persists lock state durably across process restarts. Corrupt or
// unreadable stored state is treated as unlocked (fail open) and logged,
// never surfaced to the caller as an error.
type Store interface {
	Get(ctx context.Context, deviceID string, date string) (State, error)
	Mark(ctx context.Context, deviceID string, date string, kind Kind) error
}
