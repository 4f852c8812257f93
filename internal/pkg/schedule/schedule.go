// Package schedule holds the day-dependent attendance time rules: the earliest
// checkout time per weekday and the late-arrival threshold for check-in. The
// thresholds are organization configuration, injected from env, never inlined
// by callers.
package schedule

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock threshold with minute granularity. The original
// rules compare whole minutes; seconds never participate.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "HH:MM" token.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

func (t TimeOfDay) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Rules evaluates the checkout window and the lateness threshold. It is a pure
// function of wall-clock time; the caller supplies "now".
type Rules struct {
	checkout  [7]TimeOfDay // indexed by time.Weekday (Sunday = 0)
	lateAfter TimeOfDay
}

// NewRules builds a rule set with a per-weekday checkout threshold and a
// late-arrival threshold for check-in.
func NewRules(checkout map[time.Weekday]TimeOfDay, lateAfter TimeOfDay) Rules {
	r := DefaultRules()
	for day, t := range checkout {
		r.checkout[day] = t
	}
	r.lateAfter = lateAfter
	return r
}

// DefaultRules returns the deployment defaults: Friday 11:00, Thursday 14:10,
// all other days 14:45; check-in after 07:15 is late.
func DefaultRules() Rules {
	r := Rules{lateAfter: TimeOfDay{Hour: 7, Minute: 15}}
	for day := time.Sunday; day <= time.Saturday; day++ {
		r.checkout[day] = TimeOfDay{Hour: 14, Minute: 45}
	}
	r.checkout[time.Thursday] = TimeOfDay{Hour: 14, Minute: 10}
	r.checkout[time.Friday] = TimeOfDay{Hour: 11, Minute: 0}
	return r
}

// CheckoutThreshold returns the earliest checkout time for the given weekday.
func (r Rules) CheckoutThreshold(day time.Weekday) TimeOfDay {
	return r.checkout[day]
}

// IsCheckoutOpen reports whether the clock has reached the checkout threshold
// for now's weekday. The threshold minute itself is already eligible.
func (r Rules) IsCheckoutOpen(now time.Time) bool {
	threshold := r.checkout[now.Weekday()]
	return now.Hour()*60+now.Minute() >= threshold.TotalMinutes()
}

// IsLate reports whether a check-in at the given time counts as late. The
// threshold minute itself is still on time.
func (r Rules) IsLate(at time.Time) bool {
	return at.Hour()*60+at.Minute() > r.lateAfter.TotalMinutes()
}

// LateAfter returns the late-arrival threshold.
func (r Rules) LateAfter() TimeOfDay {
	return r.lateAfter
}
