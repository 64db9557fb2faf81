package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type NotebookRepository interface {
	Create(notebook *model.Notebook) error
	FindByID(householdID, id uint) (*model.Notebook, error)
	List(householdID uint) ([]model.Notebook, error)
	Update(notebook *model.Notebook) error
	Delete(householdID, id uint) error

	CreatePage(page *model.NotebookPage) error
	FindPageByID(notebookID, pageID uint) (*model.NotebookPage, error)
	UpdatePage(page *model.NotebookPage) error
	DeletePage(notebookID, pageID uint) error
}

type notebookRepository struct {
	db *gorm.DB
}

func NewNotebookRepository(db *gorm.DB) NotebookRepository {
	return &notebookRepository{db: db}
}

func (r *notebookRepository) Create(notebook *model.Notebook) error {
	return r.db.Create(notebook).Error
}

func (r *notebookRepository) FindByID(householdID, id uint) (*model.Notebook, error) {
	var notebook model.Notebook
	err := r.db.Where("household_id = ?", householdID).
		Preload("Pages", func(db *gorm.DB) *gorm.DB {
			return db.Order("notebook_pages.position ASC")
		}).
		First(&notebook, id).Error
	if err != nil {
		return nil, err
	}
	return &notebook, nil
}

func (r *notebookRepository) List(householdID uint) ([]model.Notebook, error) {
	var notebooks []model.Notebook
	err := r.db.Where("household_id = ?", householdID).Order("updated_at DESC").Find(&notebooks).Error
	return notebooks, err
}

func (r *notebookRepository) Update(notebook *model.Notebook) error {
	return r.db.Save(notebook).Error
}

// Delete soft-deletes the notebook; pages stay behind the soft delete
// and go away with a later hard purge.
func (r *notebookRepository) Delete(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notebook_id = ?", id).Delete(&model.NotebookPage{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.Notebook{}, id).Error
	})
}

func (r *notebookRepository) CreatePage(page *model.NotebookPage) error {
	return r.db.Create(page).Error
}

func (r *notebookRepository) FindPageByID(notebookID, pageID uint) (*model.NotebookPage, error) {
	var page model.NotebookPage
	err := r.db.Where("notebook_id = ?", notebookID).First(&page, pageID).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *notebookRepository) UpdatePage(page *model.NotebookPage) error {
	return r.db.Save(page).Error
}

func (r *notebookRepository) DeletePage(notebookID, pageID uint) error {
	return r.db.Where("notebook_id = ?", notebookID).Delete(&model.NotebookPage{}, pageID).Error
}
