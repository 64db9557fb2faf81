package repository

import (
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *model.Task) error
	FindByID(householdID, id uint) (*model.Task, error)
	FindByTripID(tripID uint) (*model.Task, error)
	List(householdID uint, from, to *time.Time) ([]model.Task, error)
	ListDueOn(day time.Time) ([]model.Task, error)
	Update(task *model.Task) error
	Delete(householdID, id uint) error

	CreateStep(step *model.TaskStep) error
	FindStepByID(taskID, stepID uint) (*model.TaskStep, error)
	UpdateStep(step *model.TaskStep) error
	DeleteStep(taskID, stepID uint) error
	ReorderSteps(taskID uint, orderedIDs []uint) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) FindByID(householdID, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.Where("household_id = ?", householdID).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_steps.position ASC")
		}).
		Preload("Tags").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindByTripID(tripID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.Where("trip_id = ?", tripID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(householdID uint, from, to *time.Time) ([]model.Task, error) {
	query := r.db.Where("household_id = ?", householdID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var tasks []model.Task
	err := query.Preload("Steps").Preload("Tags").
		Order("date ASC, position ASC").Find(&tasks).Error
	return tasks, err
}

// ListDueOn returns incomplete tasks across all households dated the
// given day. Used by the reminder scheduler.
func (r *taskRepository) ListDueOn(day time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.Where("date = ? AND completed = ?", day, false).Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(task *model.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) Delete(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskStep{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.Task{}, id).Error
	})
}

func (r *taskRepository) CreateStep(step *model.TaskStep) error {
	return r.db.Create(step).Error
}

func (r *taskRepository) FindStepByID(taskID, stepID uint) (*model.TaskStep, error) {
	var step model.TaskStep
	err := r.db.Where("task_id = ?", taskID).First(&step, stepID).Error
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *taskRepository) UpdateStep(step *model.TaskStep) error {
	return r.db.Save(step).Error
}

func (r *taskRepository) DeleteStep(taskID, stepID uint) error {
	return r.db.Where("task_id = ?", taskID).Delete(&model.TaskStep{}, stepID).Error
}

// ReorderSteps persists the given order as positions 0..n-1. IDs not
// belonging to the task are ignored by the scoped update.
func (r *taskRepository) ReorderSteps(taskID uint, orderedIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for position, stepID := range orderedIDs {
			err := tx.Model(&model.TaskStep{}).
				Where("task_id = ? AND id = ?", taskID, stepID).
				Update("position", position).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
