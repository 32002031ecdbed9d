package model

import "time"

type ReminderStatus string
type RecurrenceType string
type RecurrenceUnit string

const (
	StatusActive    ReminderStatus = "active"
	StatusCompleted ReminderStatus = "completed"

	RecurrenceNone   RecurrenceType = "none"
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
	RecurrenceCustom RecurrenceType = "custom"

	UnitHour  RecurrenceUnit = "hour"
	UnitDay   RecurrenceUnit = "day"
	UnitWeek  RecurrenceUnit = "week"
	UnitMonth RecurrenceUnit = "month"
)

// ReminderStatusFromValue maps a stored status string onto the enum.
// Unknown values fall back to active so legacy documents keep showing up.
func ReminderStatusFromValue(value string) ReminderStatus {
	switch ReminderStatus(value) {
	case StatusActive, StatusCompleted:
		return ReminderStatus(value)
	}
	return StatusActive
}

// RecurrenceTypeFromValue maps a stored type string onto the enum.
// Unknown values fall back to none, which never advances.
func RecurrenceTypeFromValue(value string) RecurrenceType {
	switch RecurrenceType(value) {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceCustom:
		return RecurrenceType(value)
	}
	return RecurrenceNone
}

// RecurrenceUnitFromValue maps a stored unit string onto the enum.
// The second return reports whether the value was recognized; callers
// treat an unrecognized unit as day semantics.
func RecurrenceUnitFromValue(value string) (RecurrenceUnit, bool) {
	switch RecurrenceUnit(value) {
	case UnitHour, UnitDay, UnitWeek, UnitMonth:
		return RecurrenceUnit(value), true
	}
	return "", false
}

// RecurrenceRule describes how a reminder repeats. It is pure data: the
// calculator reads it, nothing mutates it in place. The month/time-range
// fields are stored for forward compatibility with other writers but are
// not consumed by the calculation yet.
type RecurrenceRule struct {
	Type              RecurrenceType `bson:"type" json:"type"`
	Interval          int            `bson:"interval" json:"interval"`
	Unit              RecurrenceUnit `bson:"unit,omitempty" json:"unit,omitempty"`
	DaysOfWeek        []int          `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	MonthOrdinal      *int           `bson:"month_ordinal,omitempty" json:"month_ordinal,omitempty"`
	MonthDay          *int           `bson:"month_day,omitempty" json:"month_day,omitempty"`
	TimeRangeStart    string         `bson:"time_range_start,omitempty" json:"time_range_start,omitempty"`
	TimeRangeEnd      string         `bson:"time_range_end,omitempty" json:"time_range_end,omitempty"`
	BasedOnCompletion bool           `bson:"based_on_completion,omitempty" json:"based_on_completion,omitempty"`
}

// IsRecurring reports whether the rule actually repeats.
func (r *RecurrenceRule) IsRecurring() bool {
	return r != nil && r.Type != RecurrenceNone && r.Type != ""
}

func DailyRule() *RecurrenceRule {
	return &RecurrenceRule{Type: RecurrenceDaily, Interval: 1, Unit: UnitDay}
}

func WeeklyRule(days []int) *RecurrenceRule {
	rule := &RecurrenceRule{Type: RecurrenceWeekly, Interval: 1, Unit: UnitWeek}
	if len(days) > 0 {
		rule.DaysOfWeek = days
	}
	return rule
}

type Reminder struct {
	ReminderID   string          `bson:"_id,omitempty" json:"id"`
	UserID       string          `bson:"user_id" json:"user_id"`
	Title        string          `bson:"title" json:"title" binding:"required"`
	Notes        string          `bson:"notes,omitempty" json:"notes,omitempty"`
	TriggerDate  time.Time       `bson:"trigger_date" json:"trigger_date"`
	Recurrence   *RecurrenceRule `bson:"recurrence,omitempty" json:"recurrence,omitempty"`
	Status       ReminderStatus  `bson:"status" json:"status"`
	SnoozedUntil *time.Time      `bson:"snoozed_until,omitempty" json:"snoozed_until,omitempty"`
	CompletedAt  *time.Time      `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	// LastNotifiedAt records when the due dispatcher last pushed this
	// reminder, so an uncompleted reminder is not re-announced every minute.
	LastNotifiedAt *time.Time `bson:"last_notified_at,omitempty" json:"-"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// DisplayDate is the instant the reminder should actually fire: the snooze
// override when present, otherwise the trigger date.
func (r *Reminder) DisplayDate() time.Time {
	if r.SnoozedUntil != nil {
		return *r.SnoozedUntil
	}
	return r.TriggerDate
}

// IsOverdue reports whether an active reminder's effective date has passed.
func (r *Reminder) IsOverdue(now time.Time) bool {
	return r.Status == StatusActive && r.DisplayDate().Before(now)
}
