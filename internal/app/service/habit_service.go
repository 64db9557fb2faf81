package service

import (
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound          = errors.New("habit not found")
	ErrHabitAlreadyCompleted  = errors.New("habit already completed for that day")
	ErrSkipReasonRequired     = errors.New("skipped completion requires a reason")
	ErrCompletionNotFound     = errors.New("no completion for that day")
	ErrInvalidCompletionState = errors.New("invalid completion status")
)

// HabitStats is the read-time aggregation over completions; nothing here
// is stored.
type HabitStats struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalDone     int `json:"total_done"`
	TotalSkipped  int `json:"total_skipped"`
}

type HabitService interface {
	Create(householdID, userID uint, name, schedule string) (*model.Habit, error)
	Get(householdID, id uint) (*model.Habit, error)
	List(householdID uint) ([]model.Habit, error)
	Update(householdID, id uint, name, schedule *string, active *bool) (*model.Habit, error)
	Delete(householdID, id uint) error

	Complete(householdID, id uint, day time.Time, status model.CompletionStatus, reason string) (*model.HabitCompletion, error)
	Uncomplete(householdID, id uint, day time.Time) error
	Completions(householdID, id uint, from, to *time.Time) ([]model.HabitCompletion, error)
	Stats(householdID, id uint, today time.Time) (*HabitStats, error)
}

type habitService struct {
	habitRepo repository.HabitRepository
}

func NewHabitService(habitRepo repository.HabitRepository) HabitService {
	return &habitService{habitRepo: habitRepo}
}

func (s *habitService) Create(householdID, userID uint, name, schedule string) (*model.Habit, error) {
	if schedule == "" {
		schedule = "daily"
	}
	habit := &model.Habit{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        name,
		Schedule:    schedule,
		Active:      true,
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *habitService) Get(householdID, id uint) (*model.Habit, error) {
	habit, err := s.habitRepo.FindByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, err
	}
	return habit, nil
}

func (s *habitService) List(householdID uint) ([]model.Habit, error) {
	return s.habitRepo.List(householdID)
}

func (s *habitService) Update(householdID, id uint, name, schedule *string, active *bool) (*model.Habit, error) {
	habit, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		habit.Name = *name
	}
	if schedule != nil {
		habit.Schedule = *schedule
	}
	if active != nil {
		habit.Active = *active
	}
	if err := s.habitRepo.Update(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *habitService) Delete(householdID, id uint) error {
	if _, err := s.Get(householdID, id); err != nil {
		return err
	}
	return s.habitRepo.Delete(householdID, id)
}

// Complete records one completion for the day. A second completion on
// the same day is rejected; skipped completions need a reason.
func (s *habitService) Complete(householdID, id uint, day time.Time, status model.CompletionStatus, reason string) (*model.HabitCompletion, error) {
	habit, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = model.CompletionCompleted
	}
	if status != model.CompletionCompleted && status != model.CompletionSkipped {
		return nil, ErrInvalidCompletionState
	}
	if status == model.CompletionSkipped && reason == "" {
		return nil, ErrSkipReasonRequired
	}

	date := normalizeDay(day)
	if _, err := s.habitRepo.FindCompletion(habit.ID, date); err == nil {
		return nil, ErrHabitAlreadyCompleted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	completion := &model.HabitCompletion{
		HabitID: habit.ID,
		Date:    date,
		Status:  status,
		Reason:  reason,
	}
	if err := s.habitRepo.CreateCompletion(completion); err != nil {
		logger.Error("Failed to record habit completion", err, map[string]interface{}{
			"habit_id": habit.ID,
			"date":     date.Format("2006-01-02"),
		})
		return nil, err
	}
	return completion, nil
}

func (s *habitService) Uncomplete(householdID, id uint, day time.Time) error {
	habit, err := s.Get(householdID, id)
	if err != nil {
		return err
	}

	date := normalizeDay(day)
	if _, err := s.habitRepo.FindCompletion(habit.ID, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCompletionNotFound
		}
		return err
	}
	return s.habitRepo.DeleteCompletion(habit.ID, date)
}

func (s *habitService) Completions(householdID, id uint, from, to *time.Time) ([]model.HabitCompletion, error) {
	habit, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}
	return s.habitRepo.ListCompletions(habit.ID, from, to)
}

// Stats walks the completion history and derives streaks. The current
// streak counts back from today (or yesterday, if today is not yet
// done); skipped days break it.
func (s *habitService) Stats(householdID, id uint, today time.Time) (*HabitStats, error) {
	habit, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	completions, err := s.habitRepo.ListCompletions(habit.ID, nil, nil)
	if err != nil {
		return nil, err
	}

	stats := &HabitStats{}
	doneDays := make(map[string]bool)
	for _, completion := range completions {
		switch completion.Status {
		case model.CompletionCompleted:
			stats.TotalDone++
			doneDays[completion.Date.Format("2006-01-02")] = true
		case model.CompletionSkipped:
			stats.TotalSkipped++
		}
	}

	day := normalizeDay(today)
	if !doneDays[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for doneDays[day.Format("2006-01-02")] {
		stats.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	// Longest streak over the whole history.
	streak := 0
	day = normalizeDay(today)
	earliest := day
	for key := range doneDays {
		if t, err := time.Parse("2006-01-02", key); err == nil && t.Before(earliest) {
			earliest = t
		}
	}
	for d := earliest; !d.After(normalizeDay(today)); d = d.AddDate(0, 0, 1) {
		if doneDays[d.Format("2006-01-02")] {
			streak++
			if streak > stats.LongestStreak {
				stats.LongestStreak = streak
			}
		} else {
			streak = 0
		}
	}
	return stats, nil
}
