package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"
	"main/recurrence"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// Push messages keep every signed-in device's local alarms in sync with the
// store. The backend publishes one message per reminder mutation (and one
// when a reminder comes due); each device consumes its user's channel and
// re-derives the schedule locally without querying the store.

const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
	ActionSnoozed   = "snoozed"
	ActionDue       = "due"
)

// Trigger dates travel as RFC3339 with milliseconds in UTC.
const pushTimeLayout = "2006-01-02T15:04:05.000Z"

type PushMessage struct {
	Action      string                `json:"action"`
	ReminderID  string                `json:"reminder_id"`
	Title       string                `json:"title,omitempty"`
	TriggerDate string                `json:"trigger_date,omitempty"`
	Recurrence  *model.RecurrenceRule `json:"recurrence,omitempty"`
}

func EncodePushTime(t time.Time) string {
	return t.UTC().Format(pushTimeLayout)
}

func ParsePushTime(s string) (time.Time, error) {
	return time.Parse(pushTimeLayout, s)
}

// NewPushMessage builds the wire message for a reminder mutation.
func NewPushMessage(action string, reminder *model.Reminder) *PushMessage {
	msg := &PushMessage{
		Action:     action,
		ReminderID: reminder.ReminderID,
	}
	switch action {
	case ActionCompleted, ActionDeleted:
		// Receivers only cancel; no payload needed beyond the ID. A completed
		// recurring reminder travels as "updated" with its new trigger date.
	default:
		msg.Title = reminder.Title
		msg.TriggerDate = EncodePushTime(reminder.DisplayDate())
		msg.Recurrence = reminder.Recurrence
	}
	return msg
}

type PushPublisher struct {
	client *redis.Client
}

var GlobalPushPublisher *PushPublisher

func NewPushPublisher(client *redis.Client) *PushPublisher {
	return &PushPublisher{client: client}
}

func userChannel(userID string) string {
	return fmt.Sprintf("push:user:%s", userID)
}

// Publish fans a message out to every device subscribed for the user.
func (p *PushPublisher) Publish(ctx context.Context, userID string, msg *PushMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %v", err)
	}
	if err := p.client.Publish(ctx, userChannel(userID), data).Err(); err != nil {
		utils.TrackError("push", "publish_failed")
		return fmt.Errorf("failed to publish push message: %v", err)
	}
	utils.TrackPushMessage(msg.Action)
	return nil
}

// Subscribe opens the user's push channel. Device gateway connections hold
// this open for the lifetime of the connection.
func (p *PushPublisher) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return p.client.Subscribe(ctx, userChannel(userID))
}

// ScheduleOp is what a receiving device should do with its local alarm.
type ScheduleOp int

const (
	ScheduleNoop ScheduleOp = iota
	ScheduleCancel
	ScheduleArm
)

// ScheduleInstruction is the decoded outcome of a push message: cancel the
// reminder's local alarm, or arm it for At.
type ScheduleInstruction struct {
	Op         ScheduleOp
	ReminderID string
	Title      string
	At         time.Time
}

// HandlePushMessage decodes a received push message and derives the local
// schedule instruction. When the transmitted trigger date already lies in
// the past and the message carries a recurrence rule, the next occurrence is
// re-derived with the same calculation the writer used, so all devices land
// on an identical schedule without another round trip to the store.
func HandlePushMessage(data []byte, now time.Time) (*ScheduleInstruction, error) {
	var msg PushMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode push message: %v", err)
	}
	if msg.ReminderID == "" {
		return nil, fmt.Errorf("push message missing reminder ID")
	}

	switch msg.Action {
	case ActionCompleted, ActionDeleted:
		return &ScheduleInstruction{Op: ScheduleCancel, ReminderID: msg.ReminderID}, nil

	case ActionCreated, ActionUpdated, ActionSnoozed, ActionDue:
		trigger, err := ParsePushTime(msg.TriggerDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse trigger date: %v", err)
		}

		at := trigger
		if !at.After(now) && msg.Recurrence.IsRecurring() {
			at = recurrence.NextTriggerDate(trigger, *msg.Recurrence, now)
		}
		if !at.After(now) {
			// Past one-shot trigger: nothing left to arm locally.
			return &ScheduleInstruction{Op: ScheduleNoop, ReminderID: msg.ReminderID}, nil
		}
		return &ScheduleInstruction{
			Op:         ScheduleArm,
			ReminderID: msg.ReminderID,
			Title:      msg.Title,
			At:         at,
		}, nil
	}

	return nil, fmt.Errorf("unknown push action %q", msg.Action)
}
