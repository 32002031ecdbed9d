package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

type RemindersService struct {
	RemindersRepo *repository.RemindersRepo
	Publisher     *services.PushPublisher
}

func NewRemindersService(repo *repository.RemindersRepo, publisher *services.PushPublisher) *RemindersService {
	return &RemindersService{RemindersRepo: repo, Publisher: publisher}
}

// validateRule rejects rule shapes the API should never accept. The engine
// itself degrades gracefully, but new writes get checked at the door.
func validateRule(rule *model.RecurrenceRule) error {
	if rule == nil {
		return nil
	}
	switch rule.Type {
	case "", model.RecurrenceNone, model.RecurrenceDaily, model.RecurrenceWeekly, model.RecurrenceCustom:
	default:
		return errors.New("invalid recurrence type")
	}
	if rule.Unit != "" {
		if _, ok := model.RecurrenceUnitFromValue(string(rule.Unit)); !ok {
			return errors.New("invalid recurrence unit")
		}
	}
	for _, d := range rule.DaysOfWeek {
		if d < 1 || d > 7 {
			return errors.New("days of week must be between 1 and 7")
		}
	}
	if rule.Interval < 1 {
		rule.Interval = 1
	}
	return nil
}

func (svc *RemindersService) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	if reminder.UserID == "" {
		return errors.New("user ID is required")
	}
	if reminder.Title == "" {
		return errors.New("title is required")
	}
	if reminder.TriggerDate.IsZero() {
		return errors.New("trigger date is required")
	}
	if err := validateRule(reminder.Recurrence); err != nil {
		return err
	}

	now := time.Now()
	if reminder.ReminderID == "" {
		reminder.ReminderID = utils.GenerateReminderID()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now
	reminder.Status = model.StatusActive

	if err := svc.RemindersRepo.CreateReminder(ctx, reminder); err != nil {
		return err
	}

	utils.TrackReminderOperation("create")
	svc.publish(ctx, reminder.UserID, services.ActionCreated, reminder)
	return nil
}

func (svc *RemindersService) GetUserReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	return svc.RemindersRepo.GetUserReminders(ctx, userID)
}

func (svc *RemindersService) GetCompletedReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	return svc.RemindersRepo.GetCompletedReminders(ctx, userID)
}

func (svc *RemindersService) GetReminder(ctx context.Context, userID, reminderID string) (*model.Reminder, error) {
	return svc.RemindersRepo.GetReminderByID(ctx, userID, reminderID)
}

func (svc *RemindersService) UpdateReminder(ctx context.Context, reminderID, userID string, updates *model.Reminder) (*model.Reminder, error) {
	existing, err := svc.RemindersRepo.GetReminderByID(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	if updates.Title != "" {
		existing.Title = updates.Title
	}
	existing.Notes = updates.Notes
	if !updates.TriggerDate.IsZero() {
		existing.TriggerDate = updates.TriggerDate
	}
	if err := validateRule(updates.Recurrence); err != nil {
		return nil, err
	}
	// A rule replaces the previous one wholesale; it is never patched field
	// by field.
	existing.Recurrence = updates.Recurrence
	existing.UpdatedAt = time.Now()

	if err := svc.RemindersRepo.UpdateReminder(ctx, reminderID, userID, existing); err != nil {
		return nil, err
	}

	utils.TrackReminderOperation("update")
	svc.publish(ctx, userID, services.ActionUpdated, existing)
	return existing, nil
}

// CompleteReminder finishes a reminder relative to now. Recurring reminders
// come back still active with their trigger date rolled forward; the push
// message tells other devices to re-arm at the new instant.
func (svc *RemindersService) CompleteReminder(ctx context.Context, reminderID, userID string, now time.Time) (*model.Reminder, error) {
	reminder, err := svc.RemindersRepo.CompleteReminder(ctx, reminderID, userID, now)
	if err != nil {
		return nil, err
	}

	utils.TrackReminderOperation("complete")
	if reminder.Status == model.StatusActive {
		svc.publish(ctx, userID, services.ActionUpdated, reminder)
	} else {
		svc.publish(ctx, userID, services.ActionCompleted, reminder)
	}
	return reminder, nil
}

func (svc *RemindersService) SnoozeReminder(ctx context.Context, reminderID, userID string, until time.Time) (*model.Reminder, error) {
	if !until.After(time.Now()) {
		return nil, errors.New("snooze time must be in the future")
	}

	if err := svc.RemindersRepo.SnoozeReminder(ctx, reminderID, userID, until); err != nil {
		return nil, err
	}

	reminder, err := svc.RemindersRepo.GetReminderByID(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	utils.TrackReminderOperation("snooze")
	svc.publish(ctx, userID, services.ActionSnoozed, reminder)
	return reminder, nil
}

func (svc *RemindersService) DeleteReminder(ctx context.Context, reminderID, userID string) error {
	reminder, err := svc.RemindersRepo.GetReminderByID(ctx, userID, reminderID)
	if err != nil {
		return err
	}

	if err := svc.RemindersRepo.DeleteReminder(ctx, reminderID, userID); err != nil {
		return err
	}

	utils.TrackReminderOperation("delete")
	svc.publish(ctx, userID, services.ActionDeleted, reminder)
	return nil
}

// publish fans the mutation out to the user's devices. Push delivery is best
// effort: a failed publish never rolls back a committed mutation.
func (svc *RemindersService) publish(ctx context.Context, userID, action string, reminder *model.Reminder) {
	if svc.Publisher == nil {
		return
	}
	msg := services.NewPushMessage(action, reminder)
	if err := svc.Publisher.Publish(ctx, userID, msg); err != nil {
		log.Printf("Warning: failed to publish %s push for reminder %s: %v", action, reminder.ReminderID, err)
	}
}
