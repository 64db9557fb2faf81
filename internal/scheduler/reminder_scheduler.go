package scheduler

import (
	"fmt"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ReminderScheduler generates the daily reminder notifications: tasks
// due today, habits not yet completed, and low-stock inventory items.
// Each (user, type, link, day) fires at most once.
type ReminderScheduler struct {
	cron             *cron.Cron
	taskRepo         repository.TaskRepository
	habitRepo        repository.HabitRepository
	inventoryRepo    repository.InventoryRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notifications    service.NotificationService
}

func NewReminderScheduler(
	taskRepo repository.TaskRepository,
	habitRepo repository.HabitRepository,
	inventoryRepo repository.InventoryRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	notifications service.NotificationService,
) *ReminderScheduler {
	return &ReminderScheduler{
		cron:             cron.New(),
		taskRepo:         taskRepo,
		habitRepo:        habitRepo,
		inventoryRepo:    inventoryRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifications:    notifications,
	}
}

func (s *ReminderScheduler) Start() error {
	// Daily at 7:00 server time.
	_, err := s.cron.AddFunc("0 7 * * *", func() {
		s.Run(time.Now())
	})
	if err != nil {
		logger.Error("Failed to add cron job for reminders", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reminder scheduler started (daily at 7:00 AM)", nil)
	return nil
}

func (s *ReminderScheduler) Stop() {
	logger.Info("Stopping reminder scheduler...", nil)
	s.cron.Stop()
	logger.Info("Reminder scheduler stopped", nil)
}

// Run executes one reminder pass. Split out from the cron wiring so
// tests can drive it with a fixed clock.
func (s *ReminderScheduler) Run(now time.Time) {
	logger.Info("Starting reminder pass", map[string]interface{}{
		"day": now.Format("2006-01-02"),
	})

	s.taskReminders(now)
	s.habitReminders(now)
	s.inventoryReminders(now)
}

func (s *ReminderScheduler) taskReminders(now time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tasks, err := s.taskRepo.ListDueOn(day)
	if err != nil {
		logger.Error("Failed to list due tasks", err)
		return
	}

	for _, task := range tasks {
		linkType := model.LinkTask
		s.send(task.HouseholdID, task.UserID, now, service.NotifyInput{
			Type:     model.NotificationTaskDue,
			Title:    fmt.Sprintf("Task due today: %s", task.Title),
			LinkType: &linkType,
			LinkID:   &task.ID,
		})
	}
}

func (s *ReminderScheduler) habitReminders(now time.Time) {
	habits, err := s.habitRepo.ListAllActive()
	if err != nil {
		logger.Error("Failed to list active habits", err)
		return
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, habit := range habits {
		if _, err := s.habitRepo.FindCompletion(habit.ID, day); err == nil {
			continue // already done today
		}

		linkType := model.LinkHabit
		s.send(habit.HouseholdID, habit.UserID, now, service.NotifyInput{
			Type:     model.NotificationHabitReminder,
			Title:    fmt.Sprintf("Habit reminder: %s", habit.Name),
			LinkType: &linkType,
			LinkID:   &habit.ID,
		})
	}
}

func (s *ReminderScheduler) inventoryReminders(now time.Time) {
	items, err := s.inventoryRepo.ListLowStockAll()
	if err != nil {
		logger.Error("Failed to list low-stock items", err)
		return
	}

	for _, item := range items {
		members, err := s.userRepo.ListByHousehold(item.HouseholdID)
		if err != nil {
			logger.Error("Failed to list household members", err, map[string]interface{}{
				"household_id": item.HouseholdID,
			})
			continue
		}

		linkType := model.LinkInventoryItem
		for _, member := range members {
			s.send(item.HouseholdID, member.ID, now, service.NotifyInput{
				Type:     model.NotificationLowInventory,
				Title:    fmt.Sprintf("Running low: %s", item.Name),
				Body:     fmt.Sprintf("%.1f %s left", item.Quantity, item.Unit),
				LinkType: &linkType,
				LinkID:   &item.ID,
			})
		}
	}
}

// send delivers one notification unless the same reminder already fired
// today.
func (s *ReminderScheduler) send(householdID, userID uint, now time.Time, input service.NotifyInput) {
	exists, err := s.notificationRepo.ExistsForDay(userID, input.Type, *input.LinkType, *input.LinkID, now)
	if err != nil {
		logger.Error("Failed to check reminder dedup", err, map[string]interface{}{
			"user_id": userID,
			"type":    input.Type,
		})
		return
	}
	if exists {
		return
	}

	if _, err := s.notifications.Notify(householdID, userID, input); err != nil {
		logger.Error("Failed to send reminder", err, map[string]interface{}{
			"user_id": userID,
			"type":    input.Type,
		})
	}
}
