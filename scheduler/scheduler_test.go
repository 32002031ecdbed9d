package scheduler

import (
	"testing"
	"time"

	"main/model"
)

func TestAlreadyNotified(t *testing.T) {
	trigger := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	never := &model.Reminder{TriggerDate: trigger}
	if alreadyNotified(never) {
		t.Error("reminder without a marker is not notified")
	}

	after := trigger.Add(time.Minute)
	notified := &model.Reminder{TriggerDate: trigger, LastNotifiedAt: &after}
	if !alreadyNotified(notified) {
		t.Error("marker at or past the trigger means already notified")
	}

	before := trigger.Add(-time.Hour)
	stale := &model.Reminder{TriggerDate: trigger, LastNotifiedAt: &before}
	if alreadyNotified(stale) {
		t.Error("marker before the trigger means a fresh occurrence is pending")
	}
}

func TestSnoozeResetsNotificationMarker(t *testing.T) {
	trigger := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	notifiedAt := trigger.Add(time.Minute)
	snooze := trigger.Add(30 * time.Minute)

	reminder := &model.Reminder{
		TriggerDate:    trigger,
		SnoozedUntil:   &snooze,
		LastNotifiedAt: &notifiedAt,
	}
	if alreadyNotified(reminder) {
		t.Error("snoozing past the marker should make the reminder eligible again")
	}
}
