package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	CreateSheet(sheet *model.InventorySheet) error
	FindSheetByID(householdID, id uint) (*model.InventorySheet, error)
	ListSheets(householdID uint) ([]model.InventorySheet, error)
	UpdateSheet(sheet *model.InventorySheet) error
	DeleteSheet(householdID, id uint) error

	CreateItem(item *model.InventoryItem) error
	FindItemByID(householdID, id uint) (*model.InventoryItem, error)
	ListItems(householdID uint, sheetID *uint) ([]model.InventoryItem, error)
	ListLowStock(householdID uint) ([]model.InventoryItem, error)
	ListLowStockAll() ([]model.InventoryItem, error)
	UpdateItem(item *model.InventoryItem) error
	DeleteItem(householdID, id uint) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) CreateSheet(sheet *model.InventorySheet) error {
	return r.db.Create(sheet).Error
}

func (r *inventoryRepository) FindSheetByID(householdID, id uint) (*model.InventorySheet, error) {
	var sheet model.InventorySheet
	err := r.db.Where("household_id = ?", householdID).
		Preload("Items").
		Preload("Items.Tags").
		First(&sheet, id).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *inventoryRepository) ListSheets(householdID uint) ([]model.InventorySheet, error) {
	var sheets []model.InventorySheet
	err := r.db.Where("household_id = ?", householdID).Order("name ASC").Find(&sheets).Error
	return sheets, err
}

func (r *inventoryRepository) UpdateSheet(sheet *model.InventorySheet) error {
	return r.db.Save(sheet).Error
}

func (r *inventoryRepository) DeleteSheet(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet_id = ?", id).Delete(&model.InventoryItem{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.InventorySheet{}, id).Error
	})
}

func (r *inventoryRepository) CreateItem(item *model.InventoryItem) error {
	return r.db.Create(item).Error
}

func (r *inventoryRepository) FindItemByID(householdID, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.Where("household_id = ?", householdID).Preload("Tags").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListItems(householdID uint, sheetID *uint) ([]model.InventoryItem, error) {
	query := r.db.Where("household_id = ?", householdID)
	if sheetID != nil {
		query = query.Where("sheet_id = ?", *sheetID)
	}

	var items []model.InventoryItem
	err := query.Preload("Tags").Order("name ASC").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) ListLowStock(householdID uint) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("household_id = ? AND low_threshold > 0 AND quantity <= low_threshold", householdID).
		Order("name ASC").Find(&items).Error
	return items, err
}

// ListLowStockAll spans households; used by the reminder scheduler.
func (r *inventoryRepository) ListLowStockAll() ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.Where("low_threshold > 0 AND quantity <= low_threshold").Find(&items).Error
	return items, err
}

func (r *inventoryRepository) UpdateItem(item *model.InventoryItem) error {
	return r.db.Save(item).Error
}

func (r *inventoryRepository) DeleteItem(householdID, id uint) error {
	return r.db.Where("household_id = ?", householdID).Delete(&model.InventoryItem{}, id).Error
}
