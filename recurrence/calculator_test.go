package recurrence

import (
	"testing"
	"time"

	"main/model"
)

func date(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

// Weekday numbering for readability (Sunday=1 .. Saturday=7).
const (
	sunday = iota + 1
	monday
	tuesday
	wednesday
	thursday
	friday
	saturday
)

func TestNoneReturnsAnchorUnchanged(t *testing.T) {
	from := date(2026, time.February, 10, 9, 30)
	now := date(2026, time.March, 1, 10, 0)

	rule := model.RecurrenceRule{Type: model.RecurrenceNone}
	next := NextTriggerDate(from, rule, now)

	// Even a past anchor comes back verbatim.
	if !next.Equal(from) {
		t.Errorf("Expected anchor %v, got %v", from, next)
	}
}

func TestDailyAdvancesPastNow(t *testing.T) {
	from := date(2026, time.February, 10, 9, 30)
	now := date(2026, time.February, 15, 14, 0) // 5 days later, after 09:30

	rule := model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: 1, Unit: model.UnitDay}
	next := NextTriggerDate(from, rule, now)

	expected := date(2026, time.February, 16, 9, 30)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
	if !next.After(now) {
		t.Errorf("Result %v must be strictly after now %v", next, now)
	}
}

func TestDailyIntervalStepConsistency(t *testing.T) {
	from := date(2026, time.February, 1, 8, 0)
	now := date(2026, time.February, 8, 12, 0)

	rule := model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: 3}
	next := NextTriggerDate(from, rule, now)

	// Feb 1 + 3 -> 4 -> 7 -> 10; Feb 10 is the first multiple past now.
	expected := date(2026, time.February, 10, 8, 0)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestDailyIntervalClampedToOne(t *testing.T) {
	from := date(2026, time.February, 10, 9, 0)
	now := date(2026, time.February, 10, 10, 0)

	for _, interval := range []int{0, -5} {
		rule := model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: interval}
		next := NextTriggerDate(from, rule, now)

		expected := date(2026, time.February, 11, 9, 0)
		if !next.Equal(expected) {
			t.Errorf("Interval %d: expected %v, got %v", interval, expected, next)
		}
	}
}

func TestCustomHourInterval(t *testing.T) {
	from := date(2026, time.February, 10, 9, 0)
	now := from.Add(7 * time.Hour)

	rule := model.RecurrenceRule{Type: model.RecurrenceCustom, Interval: 3, Unit: model.UnitHour}
	next := NextTriggerDate(from, rule, now)

	// Next multiple of 3 hours past +7h is +9h.
	expected := from.Add(9 * time.Hour)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestCustomUnits(t *testing.T) {
	from := date(2026, time.January, 31, 9, 0)

	tests := []struct {
		name     string
		unit     model.RecurrenceUnit
		interval int
		now      time.Time
		expected time.Time
	}{
		{
			name:     "week unit",
			unit:     model.UnitWeek,
			interval: 2,
			now:      date(2026, time.February, 20, 9, 0),
			expected: date(2026, time.February, 28, 9, 0),
		},
		{
			// AddDate normalizes Jan 31 + 1 month to Mar 3; month stepping
			// inherits the calendar's own overflow behavior.
			name:     "month unit normalizes short months",
			unit:     model.UnitMonth,
			interval: 1,
			now:      date(2026, time.February, 1, 0, 0),
			expected: date(2026, time.March, 3, 9, 0),
		},
		{
			name:     "unknown unit defaults to day",
			unit:     model.RecurrenceUnit("fortnight"),
			interval: 1,
			now:      date(2026, time.January, 31, 10, 0),
			expected: date(2026, time.February, 1, 9, 0),
		},
		{
			name:     "absent unit defaults to day",
			unit:     "",
			interval: 1,
			now:      date(2026, time.January, 31, 10, 0),
			expected: date(2026, time.February, 1, 9, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := model.RecurrenceRule{Type: model.RecurrenceCustom, Interval: tt.interval, Unit: tt.unit}
			next := NextTriggerDate(from, rule, tt.now)
			if !next.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, next)
			}
		})
	}
}

func TestWeeklyTueThuFromWedNextIsThuSameTime(t *testing.T) {
	from := date(2026, time.February, 10, 9, 30) // Tue 09:30
	now := date(2026, time.February, 11, 10, 0)  // Wed 10:00

	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		Unit:       model.UnitWeek,
		DaysOfWeek: []int{tuesday, thursday},
	}
	next := NextTriggerDate(from, rule, now)

	expected := date(2026, time.February, 12, 9, 30) // Thu 09:30
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestWeeklyMonAfterTimePassedNextIsNextWeek(t *testing.T) {
	from := date(2026, time.February, 9, 9, 0) // Mon 09:00
	now := date(2026, time.February, 9, 12, 0) // same Mon, 12:00

	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		Unit:       model.UnitWeek,
		DaysOfWeek: []int{monday},
	}
	next := NextTriggerDate(from, rule, now)

	// Today's slot already passed, so next Monday.
	expected := date(2026, time.February, 16, 9, 0)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestWeeklyPreservesTimeOfDayExactly(t *testing.T) {
	from := time.Date(2026, time.February, 10, 9, 30, 42, 123456789, time.UTC) // Tue
	now := date(2026, time.February, 11, 10, 0)                                // Wed

	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{thursday},
	}
	next := NextTriggerDate(from, rule, now)

	if next.Hour() != 9 || next.Minute() != 30 || next.Second() != 42 || next.Nanosecond() != 123456789 {
		t.Errorf("Time-of-day not preserved, got %v", next)
	}
}

func TestWeeklyEmptyDaysStepsWholeWeeks(t *testing.T) {
	from := date(2026, time.February, 2, 9, 0)
	now := date(2026, time.February, 20, 9, 0)

	rule := model.RecurrenceRule{Type: model.RecurrenceWeekly, Interval: 2}
	next := NextTriggerDate(from, rule, now)

	// Feb 2 -> 16 -> Mar 2; first 2-week increment past now.
	expected := date(2026, time.March, 2, 9, 0)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestWeeklyInvalidWeekdaysFallBackToPlainStepping(t *testing.T) {
	from := date(2026, time.February, 2, 9, 0)
	now := date(2026, time.February, 10, 9, 0)

	// Degenerate input: nothing survives the 1..7 filter, so the rule
	// behaves like a plain every-N-weeks repeat instead of never firing.
	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{0, 8, -3, 99},
	}
	next := NextTriggerDate(from, rule, now)

	expected := date(2026, time.February, 16, 9, 0)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestWeeklyDuplicateAndMixedWeekdays(t *testing.T) {
	from := date(2026, time.February, 10, 9, 30) // Tue
	now := date(2026, time.February, 11, 10, 0)  // Wed

	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{thursday, thursday, 12, tuesday, 0},
	}
	next := NextTriggerDate(from, rule, now)

	if day := Weekday(next); day != tuesday && day != thursday {
		t.Errorf("Result weekday %d not in filtered set", day)
	}
	expected := date(2026, time.February, 12, 9, 30)
	if !next.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, next)
	}
}

func TestWeeklyNeverRegressesBeforeFutureAnchor(t *testing.T) {
	now := date(2026, time.February, 9, 12, 0)   // Mon
	from := date(2026, time.February, 20, 9, 0)  // Fri next week, still ahead of now

	rule := model.RecurrenceRule{
		Type:       model.RecurrenceWeekly,
		Interval:   1,
		DaysOfWeek: []int{tuesday},
	}
	next := NextTriggerDate(from, rule, now)

	// The Tuesday candidate lands before the anchor, so the anchor wins.
	if !next.Equal(from) {
		t.Errorf("Expected anchor %v, got %v", from, next)
	}
}

func TestOccurrenceEqualToNowIsAdvanced(t *testing.T) {
	from := date(2026, time.February, 10, 9, 0)
	now := date(2026, time.February, 12, 9, 0) // exactly on a daily occurrence

	rule := model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: 1}
	next := NextTriggerDate(from, rule, now)

	expected := date(2026, time.February, 13, 9, 0)
	if !next.Equal(expected) {
		t.Errorf("Occurrence equal to now must advance: expected %v, got %v", expected, next)
	}
}

func TestReservedFieldsAreIgnored(t *testing.T) {
	from := date(2026, time.February, 10, 9, 0)
	now := date(2026, time.February, 10, 10, 0)

	ordinal, day := 2, 15
	rule := model.RecurrenceRule{
		Type:              model.RecurrenceDaily,
		Interval:          1,
		MonthOrdinal:      &ordinal,
		MonthDay:          &day,
		TimeRangeStart:    "09:00",
		TimeRangeEnd:      "17:00",
		BasedOnCompletion: true,
	}
	next := NextTriggerDate(from, rule, now)

	expected := date(2026, time.February, 11, 9, 0)
	if !next.Equal(expected) {
		t.Errorf("Reserved fields must not affect the result: expected %v, got %v", expected, next)
	}
}

func TestMonotonicAdvanceAcrossRules(t *testing.T) {
	from := date(2026, time.January, 5, 7, 45)

	rules := []model.RecurrenceRule{
		{Type: model.RecurrenceDaily, Interval: 1},
		{Type: model.RecurrenceDaily, Interval: 4},
		{Type: model.RecurrenceWeekly, Interval: 1},
		{Type: model.RecurrenceWeekly, Interval: 2, DaysOfWeek: []int{monday, friday}},
		{Type: model.RecurrenceCustom, Interval: 6, Unit: model.UnitHour},
		{Type: model.RecurrenceCustom, Interval: 1, Unit: model.UnitMonth},
	}

	// Sample a spread of reference instants after the anchor.
	for offset := 0; offset < 60; offset += 7 {
		now := from.Add(time.Duration(offset*24+13) * time.Hour)
		for _, rule := range rules {
			next := NextTriggerDate(from, rule, now)
			if !next.After(now) {
				t.Errorf("Rule %s/%d: result %v not after now %v", rule.Type, rule.Interval, next, now)
			}
			if next.Before(from) {
				t.Errorf("Rule %s/%d: result %v before anchor %v", rule.Type, rule.Interval, next, from)
			}
		}
	}
}

func TestWeekdayNumbering(t *testing.T) {
	// 2026-02-08 is a Sunday.
	for i := 0; i < 7; i++ {
		d := date(2026, time.February, 8+i, 0, 0)
		if got := Weekday(d); got != i+1 {
			t.Errorf("Weekday(%v) = %d, want %d", d, got, i+1)
		}
	}
}
