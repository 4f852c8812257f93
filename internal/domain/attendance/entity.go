package attendance

import (
	"time"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/devicelock"
)

type Kind string

const (
	KindIn  Kind = "IN"
	KindOut Kind = "OUT"
)

// Event is one check-in or check-out row from today's feed. Events are
// append-only: the client never edits or deletes a prior event.
type Event struct {
	NIP       string
	Name      string
	Kind      Kind
	Timestamp time.Time // zero when the feed row had no parseable timestamp
	Location  string    // "lat, lng" as captured
	Distance  float64   // meters from the school reference point
	PhotoURL  string
}

// TimeLabel formats the event time as HH:MM for display, or "" when the
// timestamp was missing.
func (e Event) TimeLabel() string {
	if e.Timestamp.IsZero() {
		return ""
	}
	return e.Timestamp.Format("15:04")
}

// Status is the per-device session state machine: IDLE -> PRESENT -> OUT.
// It is derived from the device lock, which is what survives restarts.
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusPresent Status = "PRESENT"
	StatusOut     Status = "OUT"
)

// StatusFromLock restores the session status from the device's daily lock.
func StatusFromLock(lock devicelock.State) Status {
	switch {
	case lock.CheckedOut:
		return StatusOut
	case lock.CheckedIn:
		return StatusPresent
	default:
		return StatusIdle
	}
}
