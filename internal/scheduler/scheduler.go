package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/preplab/internal/database"
)

// Scheduler runs the periodic reminder check
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// Notifier sends the daily-plan reminder to a user
type Notifier interface {
	SendPlanReminder(telegramID int64, pending int) error
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	// Hourly check for users whose reminder hour just arrived
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders nudges users who asked for a reminder at the current
// hour and still have unfinished sessions scheduled today.
func (s *Scheduler) checkAndSendReminders() {
	ctx := context.Background()
	currentHour := time.Now().Hour()

	userRepo := database.NewUserRepository()
	taskRepo := database.NewTaskRepository()

	users, err := userRepo.GetUsersForNotification(ctx, currentHour)
	if err != nil {
		log.Printf("Error getting users for notification: %v", err)
		return
	}

	for _, user := range users {
		tasks, err := taskRepo.ListByUserAndDate(ctx, user.ID, time.Now())
		if err != nil {
			log.Printf("Error getting today's tasks for user %d: %v", user.ID, err)
			continue
		}

		pending := 0
		for _, task := range tasks {
			if !task.IsCompleted() {
				pending++
			}
		}
		if pending == 0 {
			continue
		}

		if err := s.notifier.SendPlanReminder(user.TelegramID, pending); err != nil {
			log.Printf("Error sending reminder to user %d: %v", user.ID, err)
		}
	}
}

// RunManualCheck forces a reminder check for a specific user
func (s *Scheduler) RunManualCheck(telegramID int64) error {
	ctx := context.Background()

	userRepo := database.NewUserRepository()
	taskRepo := database.NewTaskRepository()

	user, err := userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	tasks, err := taskRepo.ListByUserAndDate(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}

	pending := 0
	for _, task := range tasks {
		if !task.IsCompleted() {
			pending++
		}
	}
	if pending == 0 {
		return nil
	}

	return s.notifier.SendPlanReminder(user.TelegramID, pending)
}
