package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type GoalRepository interface {
	CreateCategory(category *model.GoalCategory) error
	FindCategoryByID(householdID, id uint) (*model.GoalCategory, error)
	ListCategories(householdID uint) ([]model.GoalCategory, error)
	UpdateCategory(category *model.GoalCategory) error
	DeleteCategory(householdID, id uint) error

	CreateGoal(goal *model.Goal) error
	FindGoalByID(householdID, id uint) (*model.Goal, error)
	ListGoals(householdID uint, categoryID *uint, status *model.GoalStatus) ([]model.Goal, error)
	UpdateGoal(goal *model.Goal) error
	DeleteGoal(householdID, id uint) error

	CreateMilestone(milestone *model.Milestone) error
	FindMilestoneByID(goalID, id uint) (*model.Milestone, error)
	UpdateMilestone(milestone *model.Milestone) error
	DeleteMilestone(goalID, id uint) error

	AppendHistory(history *model.GoalHistory) error
	ListHistory(goalID uint) ([]model.GoalHistory, error)
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) CreateCategory(category *model.GoalCategory) error {
	return r.db.Create(category).Error
}

func (r *goalRepository) FindCategoryByID(householdID, id uint) (*model.GoalCategory, error) {
	var category model.GoalCategory
	err := r.db.Where("household_id = ?", householdID).First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *goalRepository) ListCategories(householdID uint) ([]model.GoalCategory, error) {
	var categories []model.GoalCategory
	err := r.db.Where("household_id = ?", householdID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *goalRepository) UpdateCategory(category *model.GoalCategory) error {
	return r.db.Save(category).Error
}

func (r *goalRepository) DeleteCategory(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Goals keep living; they just lose their category.
		err := tx.Model(&model.Goal{}).
			Where("household_id = ? AND category_id = ?", householdID, id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.GoalCategory{}, id).Error
	})
}

func (r *goalRepository) CreateGoal(goal *model.Goal) error {
	return r.db.Create(goal).Error
}

func (r *goalRepository) FindGoalByID(householdID, id uint) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.Where("household_id = ?", householdID).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("milestones.position ASC")
		}).
		Preload("Tags").
		First(&goal, id).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListGoals(householdID uint, categoryID *uint, status *model.GoalStatus) ([]model.Goal, error) {
	query := r.db.Where("household_id = ?", householdID)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var goals []model.Goal
	err := query.Preload("Milestones").Preload("Tags").
		Order("created_at DESC").Find(&goals).Error
	return goals, err
}

func (r *goalRepository) UpdateGoal(goal *model.Goal) error {
	return r.db.Save(goal).Error
}

func (r *goalRepository) DeleteGoal(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.Milestone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("goal_id = ?", id).Delete(&model.GoalHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.Goal{}, id).Error
	})
}

func (r *goalRepository) CreateMilestone(milestone *model.Milestone) error {
	return r.db.Create(milestone).Error
}

func (r *goalRepository) FindMilestoneByID(goalID, id uint) (*model.Milestone, error) {
	var milestone model.Milestone
	err := r.db.Where("goal_id = ?", goalID).First(&milestone, id).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

func (r *goalRepository) UpdateMilestone(milestone *model.Milestone) error {
	return r.db.Save(milestone).Error
}

func (r *goalRepository) DeleteMilestone(goalID, id uint) error {
	return r.db.Where("goal_id = ?", goalID).Delete(&model.Milestone{}, id).Error
}

func (r *goalRepository) AppendHistory(history *model.GoalHistory) error {
	return r.db.Create(history).Error
}

func (r *goalRepository) ListHistory(goalID uint) ([]model.GoalHistory, error) {
	var history []model.GoalHistory
	err := r.db.Where("goal_id = ?", goalID).Order("created_at ASC").Find(&history).Error
	return history, err
}
