package teaching

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Session is one teaching journal row from the feed. Multiple concurrent
// sessions per person are allowed; no overlap validation is performed.
type Session struct {
	ID        string
	Name      string
	Subject   string
	ClassName string
	StartTime string // "HH:MM" token or full timestamp, as stored
	EndTime   string
}

// TimeRange renders "HH:MM - HH:MM" for display, passing through values that
// cannot be reduced to a clock time.
func (s Session) TimeRange() string {
	return fmt.Sprintf("%s - %s", clockLabel(s.StartTime), clockLabel(s.EndTime))
}

// IsLiveAt reports whether the session should be shown as ongoing: true iff
// now's time-of-day is strictly before the session's end time-of-day on the
// current calendar day. Unparseable end times are never live.
func (s Session) IsLiveAt(now time.Time) bool {
	h, m, ok := clockOf(s.EndTime)
	if !ok {
		return false
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	return now.Before(end)
}

var clockPrefixRegex = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// clockOf extracts hours and minutes from either a bare "HH:MM" prefix or a
// full timestamp.
func clockOf(v string) (hour, minute int, ok bool) {
	if v == "" {
		return 0, 0, false
	}
	if m := clockPrefixRegex.FindStringSubmatch(v); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		return hour, minute, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			// The feed stores wall-clock times of the school's day; read them
			// in local time like every other timestamp from the feed.
			t = t.Local()
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}

func clockLabel(v string) string {
	if h, m, ok := clockOf(v); ok {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	if v == "" {
		return "--:--"
	}
	return v
}
