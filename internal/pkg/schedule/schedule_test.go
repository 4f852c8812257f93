package schedule

import (
	"testing"
	"time"
)

// 2026-08-28 is a Friday; the rest of that week covers every weekday.
func dayOf(weekday time.Weekday) time.Time {
	base := time.Date(2026, 8, 23, 0, 0, 0, 0, time.Local) // Sunday
	return base.AddDate(0, 0, int(weekday))
}

func at(weekday time.Weekday, hour, minute int) time.Time {
	d := dayOf(weekday)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local)
}

func TestCheckoutThresholdPerWeekday(t *testing.T) {
	rules := DefaultRules()

	cases := []struct {
		day  time.Weekday
		want string
	}{
		{time.Friday, "11:00"},
		{time.Thursday, "14:10"},
		{time.Monday, "14:45"},
		{time.Tuesday, "14:45"},
		{time.Wednesday, "14:45"},
		{time.Saturday, "14:45"},
		{time.Sunday, "14:45"},
	}
	for _, c := range cases {
		if got := rules.CheckoutThreshold(c.day).String(); got != c.want {
			t.Errorf("CheckoutThreshold(%v) = %s, want %s", c.day, got, c.want)
		}
	}
}

func TestIsCheckoutOpen(t *testing.T) {
	rules := DefaultRules()

	cases := []struct {
		now  time.Time
		want bool
	}{
		{at(time.Friday, 10, 59), false},
		{at(time.Friday, 11, 0), true},
		{at(time.Thursday, 14, 9), false},
		{at(time.Thursday, 14, 10), true},
		{at(time.Monday, 14, 44), false},
		{at(time.Monday, 14, 45), true},
	}
	for _, c := range cases {
		if got := rules.IsCheckoutOpen(c.now); got != c.want {
			t.Errorf("IsCheckoutOpen(%v %s) = %v, want %v", c.now.Weekday(), c.now.Format("15:04"), got, c.want)
		}
	}
}

func TestIsLate(t *testing.T) {
	rules := DefaultRules()

	cases := []struct {
		hour, minute int
		want         bool
	}{
		{7, 14, false},
		{7, 15, false}, // exactly on the threshold is not late
		{7, 16, true},
	}
	for _, c := range cases {
		now := at(time.Monday, c.hour, c.minute)
		if got := rules.IsLate(now); got != c.want {
			t.Errorf("IsLate(%02d:%02d) = %v, want %v", c.hour, c.minute, got, c.want)
		}
	}
}

func TestNewRulesOverride(t *testing.T) {
	rules := NewRules(map[time.Weekday]TimeOfDay{
		time.Saturday: {Hour: 12, Minute: 30},
	}, TimeOfDay{Hour: 8, Minute: 0})

	if got := rules.CheckoutThreshold(time.Saturday).String(); got != "12:30" {
		t.Errorf("override not applied, got %s", got)
	}
	if got := rules.CheckoutThreshold(time.Friday).String(); got != "11:00" {
		t.Errorf("default lost after override, got %s", got)
	}
	if rules.IsLate(at(time.Monday, 7, 30)) {
		t.Error("07:30 late with 08:00 threshold")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if _, err := ParseTimeOfDay("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
	if _, err := ParseTimeOfDay("abc"); err == nil {
		t.Error("expected error for abc")
	}
	tod, err := ParseTimeOfDay("07:15")
	if err != nil {
		t.Fatalf("ParseTimeOfDay(07:15): %v", err)
	}
	if tod.Hour != 7 || tod.Minute != 15 {
		t.Errorf("ParseTimeOfDay(07:15) = %+v", tod)
	}
}
