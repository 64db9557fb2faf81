package repository

import (
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

type BudgetRepository interface {
	CreateSource(source *model.BudgetSource) error
	FindSourceByID(householdID, id uint) (*model.BudgetSource, error)
	FindSourceByName(householdID uint, name string) (*model.BudgetSource, error)
	ListSources(householdID uint) ([]model.BudgetSource, error)
	UpdateSource(source *model.BudgetSource) error
	DeleteSource(householdID, id uint) error

	// LookupOrCreateSource returns the household's source with the given
	// name, creating a store-kind source if none exists. Used by the
	// purchase flow to lazily provision one source per store.
	LookupOrCreateSource(householdID, userID uint, name string, kind model.BudgetSourceKind) (*model.BudgetSource, error)

	CreateEntry(entry *model.BudgetEntry) error
	FindEntryByID(householdID, id uint) (*model.BudgetEntry, error)
	ListEntries(householdID uint, sourceID *uint, from, to *time.Time) ([]model.BudgetEntry, error)
	UpdateEntry(entry *model.BudgetEntry) error
	DeleteEntry(householdID, id uint) error
	FindPurchaseForEntry(entryID uint) (*model.Purchase, error)
}

type budgetRepository struct {
	db *gorm.DB
}

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) CreateSource(source *model.BudgetSource) error {
	if err := r.db.Create(source).Error; err != nil {
		logger.Error("Failed to create budget source", err, map[string]interface{}{
			"household_id": source.HouseholdID,
			"name":         source.Name,
		})
		return err
	}
	return nil
}

func (r *budgetRepository) FindSourceByID(householdID, id uint) (*model.BudgetSource, error) {
	var source model.BudgetSource
	err := r.db.Where("household_id = ?", householdID).Preload("Tags").First(&source, id).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *budgetRepository) FindSourceByName(householdID uint, name string) (*model.BudgetSource, error) {
	var source model.BudgetSource
	err := r.db.Where("household_id = ? AND name = ?", householdID, name).First(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *budgetRepository) ListSources(householdID uint) ([]model.BudgetSource, error) {
	var sources []model.BudgetSource
	err := r.db.Where("household_id = ?", householdID).Preload("Tags").Order("name ASC").Find(&sources).Error
	return sources, err
}

func (r *budgetRepository) UpdateSource(source *model.BudgetSource) error {
	return r.db.Save(source).Error
}

func (r *budgetRepository) DeleteSource(householdID, id uint) error {
	return r.db.Where("household_id = ?", householdID).Delete(&model.BudgetSource{}, id).Error
}

func (r *budgetRepository) LookupOrCreateSource(householdID, userID uint, name string, kind model.BudgetSourceKind) (*model.BudgetSource, error) {
	source, err := r.FindSourceByName(householdID, name)
	if err == nil {
		return source, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.BudgetSource{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        name,
		Kind:        kind,
	}
	if err := r.db.Create(created).Error; err != nil {
		logger.Error("Failed to create budget source on demand", err, map[string]interface{}{
			"household_id": householdID,
			"name":         name,
		})
		return nil, err
	}

	logger.Debug("Budget source created on demand", map[string]interface{}{
		"source_id":    created.ID,
		"household_id": householdID,
		"name":         name,
	})
	return created, nil
}

func (r *budgetRepository) CreateEntry(entry *model.BudgetEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create budget entry", err, map[string]interface{}{
			"household_id": entry.HouseholdID,
			"source_id":    entry.SourceID,
		})
		return err
	}
	return nil
}

func (r *budgetRepository) FindEntryByID(householdID, id uint) (*model.BudgetEntry, error) {
	var entry model.BudgetEntry
	err := r.db.Where("household_id = ?", householdID).Preload("Source").First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *budgetRepository) ListEntries(householdID uint, sourceID *uint, from, to *time.Time) ([]model.BudgetEntry, error) {
	query := r.db.Where("household_id = ?", householdID)
	if sourceID != nil {
		query = query.Where("source_id = ?", *sourceID)
	}
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}

	var entries []model.BudgetEntry
	err := query.Preload("Source").Order("date DESC, id DESC").Find(&entries).Error
	return entries, err
}

func (r *budgetRepository) UpdateEntry(entry *model.BudgetEntry) error {
	return r.db.Save(entry).Error
}

func (r *budgetRepository) DeleteEntry(householdID, id uint) error {
	return r.db.Where("household_id = ?", householdID).Delete(&model.BudgetEntry{}, id).Error
}

func (r *budgetRepository) FindPurchaseForEntry(entryID uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Where("budget_entry_id = ?", entryID).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}
