package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *model.Tag) error
	FindByID(householdID, id uint) (*model.Tag, error)
	FindByName(householdID uint, name string) (*model.Tag, error)
	List(householdID uint) ([]model.Tag, error)
	Update(tag *model.Tag) error
	Delete(householdID, id uint) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) FindByID(householdID, id uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("household_id = ?", householdID).First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByName(householdID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("household_id = ? AND name = ?", householdID, name).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(householdID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Where("household_id = ?", householdID).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepository) Update(tag *model.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes the tag; join rows go with it via the FK cascade.
func (r *tagRepository) Delete(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// SQLite in tests has no FK cascade on the join tables, so clear
		// them explicitly.
		for _, join := range []interface{}{
			&model.TaskTag{}, &model.BudgetSourceTag{},
			&model.InventoryItemTag{}, &model.GoalTag{},
		} {
			if err := tx.Where("tag_id = ?", id).Delete(join).Error; err != nil {
				return err
			}
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.Tag{}, id).Error
	})
}
