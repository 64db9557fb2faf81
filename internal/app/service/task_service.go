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
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskStepNotFound = errors.New("task step not found")
)

type TaskInput struct {
	Title     string
	Notes     *string
	Date      *time.Time
	Time      *string
	Completed *bool
	Position  *int
}

type TaskService interface {
	Create(householdID, userID uint, title, notes string, date time.Time, timeOfDay string) (*model.Task, error)
	Get(householdID, id uint) (*model.Task, error)
	List(householdID uint, from, to *time.Time) ([]model.Task, error)
	Update(householdID, id uint, input TaskInput) (*model.Task, error)
	Delete(householdID, id uint) error

	AddStep(householdID, taskID uint, label string) (*model.TaskStep, error)
	UpdateStep(householdID, taskID, stepID uint, label *string, done *bool) (*model.TaskStep, error)
	DeleteStep(householdID, taskID, stepID uint) error
	ReorderSteps(householdID, taskID uint, orderedIDs []uint) (*model.Task, error)

	SetTags(householdID, taskID uint, tagIDs []uint) (*model.Task, error)
}

type taskService struct {
	db       *gorm.DB
	taskRepo repository.TaskRepository
	tagRepo  repository.TagRepository
}

func NewTaskService(db *gorm.DB, taskRepo repository.TaskRepository, tagRepo repository.TagRepository) TaskService {
	return &taskService{db: db, taskRepo: taskRepo, tagRepo: tagRepo}
}

func (s *taskService) Create(householdID, userID uint, title, notes string, date time.Time, timeOfDay string) (*model.Task, error) {
	task := &model.Task{
		HouseholdID: householdID,
		UserID:      userID,
		Title:       title,
		Notes:       notes,
		Date:        normalizeDay(date),
		Time:        timeOfDay,
		TaskType:    model.TaskGeneral,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(householdID, id uint) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) List(householdID uint, from, to *time.Time) ([]model.Task, error) {
	return s.taskRepo.List(householdID, from, to)
}

// Update patches task fields. Moving a trip task moves its trip too so
// the dates never diverge.
func (s *taskService) Update(householdID, id uint, input TaskInput) (*model.Task, error) {
	task, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if input.Title != "" {
			task.Title = input.Title
		}
		if input.Notes != nil {
			task.Notes = *input.Notes
		}
		if input.Time != nil {
			task.Time = *input.Time
		}
		if input.Completed != nil {
			task.Completed = *input.Completed
		}
		if input.Position != nil {
			task.Position = *input.Position
		}
		if input.Date != nil {
			task.Date = normalizeDay(*input.Date)
			if task.TaskType == model.TaskTrip && task.TripID != nil {
				err := tx.Model(&model.Trip{}).
					Where("id = ?", *task.TripID).
					Update("date", task.Date).Error
				if err != nil {
					return err
				}
			}
		}
		return tx.Save(task).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task. A trip task takes its trip down with it:
// stops, purchases, and the purchases' budget entries all go in the same
// transaction.
func (s *taskService) Delete(householdID, id uint) error {
	task, err := s.Get(householdID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.TaskStep{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Task{}, task.ID).Error; err != nil {
			return err
		}

		if task.TaskType != model.TaskTrip || task.TripID == nil {
			return nil
		}

		var stops []model.Stop
		if err := tx.Where("trip_id = ?", *task.TripID).Find(&stops).Error; err != nil {
			return err
		}
		for _, stop := range stops {
			if err := deleteStopTx(tx, &stop); err != nil {
				return err
			}
		}
		if err := tx.Delete(&model.Trip{}, *task.TripID).Error; err != nil {
			return err
		}

		logger.Info("Trip task deleted with its trip", map[string]interface{}{
			"task_id": task.ID,
			"trip_id": *task.TripID,
		})
		return nil
	})
}

func (s *taskService) AddStep(householdID, taskID uint, label string) (*model.TaskStep, error) {
	task, err := s.Get(householdID, taskID)
	if err != nil {
		return nil, err
	}

	step := &model.TaskStep{
		TaskID:   task.ID,
		Label:    label,
		Position: len(task.Steps),
	}
	if err := s.taskRepo.CreateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *taskService) UpdateStep(householdID, taskID, stepID uint, label *string, done *bool) (*model.TaskStep, error) {
	if _, err := s.Get(householdID, taskID); err != nil {
		return nil, err
	}

	step, err := s.taskRepo.FindStepByID(taskID, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskStepNotFound
		}
		return nil, err
	}

	if label != nil {
		step.Label = *label
	}
	if done != nil {
		step.Done = *done
	}
	if err := s.taskRepo.UpdateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *taskService) DeleteStep(householdID, taskID, stepID uint) error {
	if _, err := s.Get(householdID, taskID); err != nil {
		return err
	}
	if _, err := s.taskRepo.FindStepByID(taskID, stepID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskStepNotFound
		}
		return err
	}
	return s.taskRepo.DeleteStep(taskID, stepID)
}

func (s *taskService) ReorderSteps(householdID, taskID uint, orderedIDs []uint) (*model.Task, error) {
	if _, err := s.Get(householdID, taskID); err != nil {
		return nil, err
	}
	if err := s.taskRepo.ReorderSteps(taskID, orderedIDs); err != nil {
		return nil, err
	}
	return s.Get(householdID, taskID)
}

// SetTags replaces the task's tag set. Every tag must belong to the same
// household.
func (s *taskService) SetTags(householdID, taskID uint, tagIDs []uint) (*model.Task, error) {
	task, err := s.Get(householdID, taskID)
	if err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := s.tagRepo.FindByID(householdID, tagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
		tags = append(tags, *tag)
	}

	if err := s.db.Model(task).Association("Tags").Replace(tags); err != nil {
		return nil, err
	}
	return s.Get(householdID, taskID)
}
