package repository

import (
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type HabitRepository interface {
	Create(habit *model.Habit) error
	FindByID(householdID, id uint) (*model.Habit, error)
	List(householdID uint) ([]model.Habit, error)
	ListAllActive() ([]model.Habit, error)
	Update(habit *model.Habit) error
	Delete(householdID, id uint) error

	CreateCompletion(completion *model.HabitCompletion) error
	FindCompletion(habitID uint, date time.Time) (*model.HabitCompletion, error)
	ListCompletions(habitID uint, from, to *time.Time) ([]model.HabitCompletion, error)
	DeleteCompletion(habitID uint, date time.Time) error
}

type habitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) HabitRepository {
	return &habitRepository{db: db}
}

func (r *habitRepository) Create(habit *model.Habit) error {
	return r.db.Create(habit).Error
}

func (r *habitRepository) FindByID(householdID, id uint) (*model.Habit, error) {
	var habit model.Habit
	err := r.db.Where("household_id = ?", householdID).First(&habit, id).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *habitRepository) List(householdID uint) ([]model.Habit, error) {
	var habits []model.Habit
	err := r.db.Where("household_id = ?", householdID).Order("name ASC").Find(&habits).Error
	return habits, err
}

// ListAllActive spans households; used by the reminder scheduler.
func (r *habitRepository) ListAllActive() ([]model.Habit, error) {
	var habits []model.Habit
	err := r.db.Where("active = ?", true).Find(&habits).Error
	return habits, err
}

func (r *habitRepository) Update(habit *model.Habit) error {
	return r.db.Save(habit).Error
}

func (r *habitRepository) Delete(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&model.HabitCompletion{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.Habit{}, id).Error
	})
}

func (r *habitRepository) CreateCompletion(completion *model.HabitCompletion) error {
	return r.db.Create(completion).Error
}

func (r *habitRepository) FindCompletion(habitID uint, date time.Time) (*model.HabitCompletion, error) {
	var completion model.HabitCompletion
	err := r.db.Where("habit_id = ? AND date = ?", habitID, date).First(&completion).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (r *habitRepository) ListCompletions(habitID uint, from, to *time.Time) ([]model.HabitCompletion, error) {
	query := r.db.Where("habit_id = ?", habitID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var completions []model.HabitCompletion
	err := query.Order("date DESC").Find(&completions).Error
	return completions, err
}

func (r *habitRepository) DeleteCompletion(habitID uint, date time.Time) error {
	return r.db.Where("habit_id = ? AND date = ?", habitID, date).Delete(&model.HabitCompletion{}).Error
}
