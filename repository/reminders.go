package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/recurrence"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrReminderNotFound = errors.New("reminder not found")

type RemindersRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for reminders
func GetRemindersRepo(client *mongo.Client) *RemindersRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("REMINDERS_COLLECTION", "reminders")
	return &RemindersRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Inserts a new reminder for a user
func (r *RemindersRepo) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	timer := utils.TrackDBOperation("insert", "reminders")
	defer timer.ObserveDuration()

	if reminder.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, reminder)
	if err != nil {
		utils.TrackError("database", "reminder_creation_failed")
		return err
	}

	return nil
}

// Retrieves a single reminder scoped by owner
func (r *RemindersRepo) GetReminderByID(ctx context.Context, userID, reminderID string) (*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	var reminder model.Reminder
	filter := bson.M{"_id": reminderID, "user_id": userID}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&reminder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "reminder_not_found")
			return nil, ErrReminderNotFound
		}
		utils.TrackError("database", "reminder_fetch_failed")
		return nil, err
	}
	return &reminder, nil
}

// Retrieves all active reminders for a user ordered by trigger date
func (r *RemindersRepo) GetUserReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "status": model.StatusActive}
	opts := options.Find().SetSort(bson.D{{Key: "trigger_date", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "reminder_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []*model.Reminder
	if err = cursor.All(ctx, &reminders); err != nil {
		utils.TrackError("database", "reminder_decode_failed")
		return nil, err
	}
	return reminders, nil
}

// Retrieves completed reminders for a user, most recent first
func (r *RemindersRepo) GetCompletedReminders(ctx context.Context, userID string) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID, "status": model.StatusCompleted}
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "reminder_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []*model.Reminder
	if err = cursor.All(ctx, &reminders); err != nil {
		utils.TrackError("database", "reminder_decode_failed")
		return nil, err
	}
	return reminders, nil
}

// All encompassing update for a specific reminder (title, notes, trigger
// date, recurrence rule)
func (r *RemindersRepo) UpdateReminder(ctx context.Context, reminderID, userID string, updates *model.Reminder) error {
	timer := utils.TrackDBOperation("update", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": reminderID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":        updates.Title,
			"notes":        updates.Notes,
			"trigger_date": updates.TriggerDate,
			"recurrence":   updates.Recurrence,
			"updated_at":   time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "reminder_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "reminder_not_found")
		return ErrReminderNotFound
	}
	return nil
}

// CompleteReminder finishes a reminder relative to now. A recurring reminder
// rolls forward to its next trigger date computed by the recurrence engine
// and stays active; a one-shot reminder is marked completed. Any snooze
// override is cleared either way.
func (r *RemindersRepo) CompleteReminder(ctx context.Context, reminderID, userID string, now time.Time) (*model.Reminder, error) {
	timer := utils.TrackDBOperation("update", "reminders")
	defer timer.ObserveDuration()

	reminder, err := r.GetReminderByID(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": reminderID, "user_id": userID}

	if reminder.Recurrence.IsRecurring() {
		next := recurrence.NextTriggerDate(reminder.TriggerDate, *reminder.Recurrence, now)
		update := bson.M{
			"$set": bson.M{
				"trigger_date": next,
				"updated_at":   now,
			},
			"$unset": bson.M{"snoozed_until": ""},
		}
		if _, err := r.MongoCollection.UpdateOne(ctx, filter, update); err != nil {
			utils.TrackError("database", "reminder_complete_failed")
			return nil, err
		}
		utils.TrackRecurrenceAdvance(string(reminder.Recurrence.Type))

		reminder.TriggerDate = next
		reminder.SnoozedUntil = nil
		reminder.UpdatedAt = now
		return reminder, nil
	}

	update := bson.M{
		"$set": bson.M{
			"status":       model.StatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		},
		"$unset": bson.M{"snoozed_until": ""},
	}
	if _, err := r.MongoCollection.UpdateOne(ctx, filter, update); err != nil {
		utils.TrackError("database", "reminder_complete_failed")
		return nil, err
	}

	completedAt := now
	reminder.Status = model.StatusCompleted
	reminder.CompletedAt = &completedAt
	reminder.SnoozedUntil = nil
	reminder.UpdatedAt = now
	return reminder, nil
}

// SnoozeReminder overrides the effective trigger time without touching the
// recurrence anchor
func (r *RemindersRepo) SnoozeReminder(ctx context.Context, reminderID, userID string, until time.Time) error {
	timer := utils.TrackDBOperation("update", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": reminderID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"snoozed_until": until,
			"updated_at":    time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "reminder_snooze_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "reminder_not_found")
		return ErrReminderNotFound
	}
	return nil
}

// Removes a specific reminder from the database
func (r *RemindersRepo) DeleteReminder(ctx context.Context, reminderID, userID string) error {
	timer := utils.TrackDBOperation("delete", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": reminderID, "user_id": userID}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "reminder_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "reminder_not_found")
		return ErrReminderNotFound
	}
	return nil
}

// DeleteAllUserReminders removes every reminder a user owns, used when the
// account itself goes away
func (r *RemindersRepo) DeleteAllUserReminders(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "reminders")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database", "reminder_deletion_failed")
	}
	return err
}

// GetDueReminders returns active reminders whose effective trigger time
// (snooze override when present, trigger date otherwise) has passed. Used by
// the minute scheduler to fan out due notifications.
func (r *RemindersRepo) GetDueReminders(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{
		"status": model.StatusActive,
		"$or": []bson.M{
			{"snoozed_until": bson.M{"$lte": now}},
			{
				"snoozed_until": bson.M{"$exists": false},
				"trigger_date":  bson.M{"$lte": now},
			},
		},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "due_reminder_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []*model.Reminder
	if err = cursor.All(ctx, &reminders); err != nil {
		utils.TrackError("database", "reminder_decode_failed")
		return nil, err
	}
	return reminders, nil
}

// MarkNotified records that the due dispatcher pushed this reminder
func (r *RemindersRepo) MarkNotified(ctx context.Context, reminderID string, at time.Time) error {
	timer := utils.TrackDBOperation("update", "reminders")
	defer timer.ObserveDuration()

	update := bson.M{"$set": bson.M{"last_notified_at": at}}
	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": reminderID}, update)
	if err != nil {
		utils.TrackError("database", "reminder_notify_mark_failed")
	}
	return err
}

// Counts the active reminders for a user for display in the UI
func (r *RemindersRepo) CountActiveReminders(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "reminders")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx,
		bson.M{"user_id": userID, "status": model.StatusActive})
	if err != nil {
		utils.TrackError("database", "reminder_count_failed")
		return 0, err
	}
	return int(count), nil
}
