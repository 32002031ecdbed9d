// Package recurrence computes the next occurrence of a repeating reminder.
// It is shared by the reminders service, the minute scheduler and the push
// message handler so every writer and reader derives the same schedule.
//
// Supported rules:
//   - daily: every N days
//   - weekly: every N weeks, optionally restricted to specific weekdays
//     (1..7, Sunday=1)
//   - custom: every N hours/days/weeks/months
//
// The package is pure: no clock reads (except NextFromNow), no I/O, safe for
// concurrent use.
package recurrence

import (
	"time"

	"main/model"
)

// NextTriggerDate returns the first occurrence of rule strictly after now,
// anchored at from. The anchor carries the intended time-of-day. A rule of
// type none returns from unchanged, even when it lies in the past.
//
// Malformed input never fails: interval below 1 is clamped to 1, an unknown
// unit means days, weekday values outside 1..7 are dropped. A reminder must
// keep advancing even when it carries data written by an older app version.
func NextTriggerDate(from time.Time, rule model.RecurrenceRule, now time.Time) time.Time {
	switch rule.Type {
	case model.RecurrenceDaily:
		return nextByStep(from, now, stepDays(1), rule.Interval)
	case model.RecurrenceWeekly:
		return nextWeekly(from, now, rule.Interval, rule.DaysOfWeek)
	case model.RecurrenceCustom:
		return nextByStep(from, now, stepForUnit(rule.Unit), rule.Interval)
	}
	return from
}

// NextFromNow is the boundary convenience: same computation with the wall
// clock as the reference instant. Callers that care about determinism pass
// now explicitly to NextTriggerDate instead.
func NextFromNow(from time.Time, rule model.RecurrenceRule) time.Time {
	return NextTriggerDate(from, rule, time.Now())
}

// Weekday returns the calendar weekday of t in the 1..7 numbering used by
// RecurrenceRule.DaysOfWeek (Sunday=1 .. Saturday=7).
func Weekday(t time.Time) int {
	return int(t.Weekday()) + 1
}

// stepFunc advances an instant by n units of one calendar field, returning a
// new instant. Calendar arithmetic (month lengths, DST) is left to time's
// own field handling rather than fixed-duration math.
type stepFunc func(t time.Time, n int) time.Time

func stepHours(unit int) stepFunc {
	return func(t time.Time, n int) time.Time {
		return t.Add(time.Duration(unit*n) * time.Hour)
	}
}

func stepDays(unit int) stepFunc {
	return func(t time.Time, n int) time.Time {
		return t.AddDate(0, 0, unit*n)
	}
}

func stepMonths() stepFunc {
	return func(t time.Time, n int) time.Time {
		return t.AddDate(0, n, 0)
	}
}

func stepForUnit(unit model.RecurrenceUnit) stepFunc {
	switch unit {
	case model.UnitHour:
		return stepHours(1)
	case model.UnitWeek:
		return stepDays(7)
	case model.UnitMonth:
		return stepMonths()
	}
	// day semantics for an absent or unrecognized unit
	return stepDays(1)
}

// nextByStep is the catch-up loop: walk the cursor forward from the anchor
// in interval-sized steps until it passes now. Each step strictly increases
// the cursor, so the loop terminates after at most one step past now.
func nextByStep(from, now time.Time, step stepFunc, interval int) time.Time {
	if interval < 1 {
		interval = 1
	}
	cursor := from
	for !cursor.After(now) {
		cursor = step(cursor, interval)
	}
	return cursor
}

// nextWeekly handles weekly rules. Without a weekday restriction it is a
// plain every-N-weeks step. With one, it scans forward day by day from now,
// carrying the anchor's time-of-day, until it lands on a listed weekday.
func nextWeekly(from, now time.Time, intervalWeeks int, daysOfWeek []int) time.Time {
	targetDays := normalizeWeekdays(daysOfWeek)
	if len(targetDays) == 0 {
		return nextByStep(from, now, stepDays(7), intervalWeeks)
	}

	// Search from now's date at the anchor's time-of-day, starting strictly
	// after now.
	cursor := time.Date(
		now.Year(), now.Month(), now.Day(),
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(),
		from.Location(),
	)
	if !cursor.After(now) {
		cursor = cursor.AddDate(0, 0, 1)
	}

	// The window covers more than one full interval cycle, so a non-empty
	// weekday set always matches within it.
	if intervalWeeks < 1 {
		intervalWeeks = 1
	}
	maxDays := intervalWeeks*7 + 7
	for i := 0; i <= maxDays; i++ {
		if targetDays[Weekday(cursor)] {
			// Never regress before the anchor when it is itself in the future.
			if cursor.Before(from) {
				return from
			}
			return cursor
		}
		cursor = cursor.AddDate(0, 0, 1)
	}

	// Degenerate-input guard; unreachable once targetDays is non-empty.
	return nextByStep(from, now, stepDays(7), intervalWeeks)
}

// normalizeWeekdays filters to 1..7 and deduplicates into a membership set.
// Anything else in the list is legacy noise and gets dropped.
func normalizeWeekdays(days []int) map[int]bool {
	var set map[int]bool
	for _, d := range days {
		if d < 1 || d > 7 {
			continue
		}
		if set == nil {
			set = make(map[int]bool, len(days))
		}
		set[d] = true
	}
	return set
}
