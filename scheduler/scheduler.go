package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/services"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the backend's periodic work: a minute sweep that pushes
// "due" messages for reminders whose trigger time has passed, and a nightly
// prune of dead device registrations.
type Scheduler struct {
	cron      *cron.Cron
	reminders *repository.RemindersRepo
	devices   *repository.DevicesRepo
	publisher *services.PushPublisher
}

const staleDeviceAge = 90 * 24 * time.Hour

func New(reminders *repository.RemindersRepo, devices *repository.DevicesRepo, publisher *services.PushPublisher) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		devices:   devices,
		publisher: publisher,
	}
}

// Start registers the jobs and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc("* * * * *", s.dispatchDue); err != nil {
		return fmt.Errorf("add due dispatch: %w", err)
	}
	if _, err := s.cron.AddFunc("0 3 * * *", s.pruneDevices); err != nil {
		return fmt.Errorf("add device prune: %w", err)
	}

	s.cron.Start()
	log.Println("Scheduler started")

	<-ctx.Done()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) dispatchDue() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	due, err := s.reminders.GetDueReminders(ctx, now)
	if err != nil {
		log.Printf("Error loading due reminders: %v", err)
		return
	}

	for _, reminder := range due {
		if alreadyNotified(reminder) {
			continue
		}

		msg := services.NewPushMessage(services.ActionDue, reminder)
		if err := s.publisher.Publish(ctx, reminder.UserID, msg); err != nil {
			log.Printf("Error publishing due push for reminder %s: %v", reminder.ReminderID, err)
			continue
		}

		if err := s.reminders.MarkNotified(ctx, reminder.ReminderID, now); err != nil {
			log.Printf("Error marking reminder %s notified: %v", reminder.ReminderID, err)
		}
	}
}

// alreadyNotified reports whether the current occurrence was pushed before.
// Snoozing or rolling the trigger forward moves the effective date past the
// marker and makes the reminder eligible again.
func alreadyNotified(reminder *model.Reminder) bool {
	return reminder.LastNotifiedAt != nil && !reminder.LastNotifiedAt.Before(reminder.DisplayDate())
}

func (s *Scheduler) pruneDevices() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pruned, err := s.devices.PruneStaleDevices(ctx, staleDeviceAge)
	if err != nil {
		log.Printf("Error pruning stale devices: %v", err)
		return
	}
	if pruned > 0 {
		log.Printf("Pruned %d stale devices", pruned)
	}
}
