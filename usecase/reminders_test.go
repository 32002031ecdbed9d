package usecase

import (
	"testing"

	"main/model"
)

func TestValidateRuleAcceptsKnownShapes(t *testing.T) {
	rules := []*model.RecurrenceRule{
		nil,
		{},
		model.DailyRule(),
		model.WeeklyRule([]int{1, 7}),
		{Type: model.RecurrenceCustom, Interval: 3, Unit: model.UnitHour},
		{Type: model.RecurrenceNone},
	}
	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			t.Errorf("validateRule(%+v) = %v, want nil", rule, err)
		}
	}
}

func TestValidateRuleRejectsBadType(t *testing.T) {
	rule := &model.RecurrenceRule{Type: "yearly", Interval: 1}
	if err := validateRule(rule); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestValidateRuleRejectsBadUnit(t *testing.T) {
	rule := &model.RecurrenceRule{Type: model.RecurrenceCustom, Interval: 1, Unit: "fortnight"}
	if err := validateRule(rule); err == nil {
		t.Error("expected error for unknown unit")
	}
}

func TestValidateRuleRejectsBadWeekdays(t *testing.T) {
	for _, days := range [][]int{{0}, {8}, {-1}, {3, 9}} {
		rule := &model.RecurrenceRule{Type: model.RecurrenceWeekly, Interval: 1, DaysOfWeek: days}
		if err := validateRule(rule); err == nil {
			t.Errorf("expected error for weekdays %v", days)
		}
	}
}

func TestValidateRuleClampsInterval(t *testing.T) {
	rule := &model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: 0}
	if err := validateRule(rule); err != nil {
		t.Fatalf("validateRule: %v", err)
	}
	if rule.Interval != 1 {
		t.Errorf("interval = %d, want clamped to 1", rule.Interval)
	}

	negative := &model.RecurrenceRule{Type: model.RecurrenceDaily, Interval: -5}
	if err := validateRule(negative); err != nil {
		t.Fatalf("validateRule: %v", err)
	}
	if negative.Interval != 1 {
		t.Errorf("interval = %d, want clamped to 1", negative.Interval)
	}
}
