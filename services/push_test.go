package services

import (
	"encoding/json"
	"testing"
	"time"

	"main/model"
)

func TestPushTimeRoundTrip(t *testing.T) {
	instant := time.Date(2026, 3, 10, 9, 30, 0, 500*int(time.Millisecond), time.UTC)

	encoded := EncodePushTime(instant)
	if encoded != "2026-03-10T09:30:00.500Z" {
		t.Errorf("EncodePushTime = %q", encoded)
	}

	parsed, err := ParsePushTime(encoded)
	if err != nil {
		t.Fatalf("ParsePushTime: %v", err)
	}
	if !parsed.Equal(instant) {
		t.Errorf("round trip lost the instant: got %v, want %v", parsed, instant)
	}
}

func TestEncodePushTimeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2026, 3, 10, 11, 0, 0, 0, loc)

	if got := EncodePushTime(local); got != "2026-03-10T09:00:00.000Z" {
		t.Errorf("EncodePushTime(%v) = %q", local, got)
	}
}

func TestNewPushMessagePayloadByAction(t *testing.T) {
	trigger := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	reminder := &model.Reminder{
		ReminderID:  "rem-1",
		Title:       "Water the plants",
		TriggerDate: trigger,
		Recurrence:  model.DailyRule(),
		Status:      model.StatusActive,
	}

	msg := NewPushMessage(ActionCreated, reminder)
	if msg.Title == "" || msg.TriggerDate == "" || msg.Recurrence == nil {
		t.Errorf("created message should carry full payload: %+v", msg)
	}

	for _, action := range []string{ActionCompleted, ActionDeleted} {
		msg := NewPushMessage(action, reminder)
		if msg.ReminderID != "rem-1" {
			t.Errorf("%s message lost the reminder ID", action)
		}
		if msg.Title != "" || msg.TriggerDate != "" || msg.Recurrence != nil {
			t.Errorf("%s message should only carry the ID: %+v", action, msg)
		}
	}
}

func TestNewPushMessageUsesSnoozeDate(t *testing.T) {
	trigger := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	snooze := trigger.Add(30 * time.Minute)
	reminder := &model.Reminder{
		ReminderID:   "rem-1",
		Title:        "Standup",
		TriggerDate:  trigger,
		SnoozedUntil: &snooze,
	}

	msg := NewPushMessage(ActionSnoozed, reminder)
	if msg.TriggerDate != EncodePushTime(snooze) {
		t.Errorf("snoozed message trigger = %q, want %q", msg.TriggerDate, EncodePushTime(snooze))
	}
}

func marshalMessage(t *testing.T, msg *PushMessage) []byte {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal push message: %v", err)
	}
	return data
}

func TestHandlePushMessageCancels(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	data := marshalMessage(t, &PushMessage{Action: ActionDeleted, ReminderID: "rem-1"})

	inst, err := HandlePushMessage(data, now)
	if err != nil {
		t.Fatalf("HandlePushMessage: %v", err)
	}
	if inst.Op != ScheduleCancel || inst.ReminderID != "rem-1" {
		t.Errorf("got %+v, want cancel for rem-1", inst)
	}
}

func TestHandlePushMessageArmsFutureTrigger(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := now.Add(2 * time.Hour)
	data := marshalMessage(t, &PushMessage{
		Action:      ActionCreated,
		ReminderID:  "rem-1",
		Title:       "Call dentist",
		TriggerDate: EncodePushTime(at),
	})

	inst, err := HandlePushMessage(data, now)
	if err != nil {
		t.Fatalf("HandlePushMessage: %v", err)
	}
	if inst.Op != ScheduleArm {
		t.Fatalf("got op %v, want arm", inst.Op)
	}
	if !inst.At.Equal(at) {
		t.Errorf("armed at %v, want %v", inst.At, at)
	}
	if inst.Title != "Call dentist" {
		t.Errorf("title = %q", inst.Title)
	}
}

func TestHandlePushMessageRederivesPastRecurring(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)
	data := marshalMessage(t, &PushMessage{
		Action:      ActionUpdated,
		ReminderID:  "rem-1",
		Title:       "Take medication",
		TriggerDate: EncodePushTime(past),
		Recurrence:  model.DailyRule(),
	})

	inst, err := HandlePushMessage(data, now)
	if err != nil {
		t.Fatalf("HandlePushMessage: %v", err)
	}
	if inst.Op != ScheduleArm {
		t.Fatalf("got op %v, want arm", inst.Op)
	}
	want := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	if !inst.At.Equal(want) {
		t.Errorf("re-derived at %v, want %v", inst.At, want)
	}
}

func TestHandlePushMessagePastOneShotIsNoop(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	data := marshalMessage(t, &PushMessage{
		Action:      ActionDue,
		ReminderID:  "rem-1",
		Title:       "Expired",
		TriggerDate: EncodePushTime(past),
	})

	inst, err := HandlePushMessage(data, now)
	if err != nil {
		t.Fatalf("HandlePushMessage: %v", err)
	}
	if inst.Op != ScheduleNoop {
		t.Errorf("got op %v, want noop", inst.Op)
	}
}

func TestHandlePushMessageRejectsGarbage(t *testing.T) {
	now := time.Now()

	if _, err := HandlePushMessage([]byte("not json"), now); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := HandlePushMessage(marshalMessage(t, &PushMessage{Action: ActionCreated}), now); err == nil {
		t.Error("expected error for missing reminder ID")
	}
	if _, err := HandlePushMessage(marshalMessage(t, &PushMessage{Action: "exploded", ReminderID: "x"}), now); err == nil {
		t.Error("expected error for unknown action")
	}
}
