package service

import (
	"errors"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrSheetNotFound         = errors.New("inventory sheet not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

type InventoryItemInput struct {
	Name         string
	Quantity     *float64
	Unit         *string
	LowThreshold *float64
	PurchaseID   *uint
}

type InventoryService interface {
	CreateSheet(householdID, userID uint, name string) (*model.InventorySheet, error)
	GetSheet(householdID, id uint) (*model.InventorySheet, error)
	ListSheets(householdID uint) ([]model.InventorySheet, error)
	RenameSheet(householdID, id uint, name string) (*model.InventorySheet, error)
	DeleteSheet(householdID, id uint) error

	CreateItem(householdID, sheetID uint, input InventoryItemInput) (*model.InventoryItem, error)
	GetItem(householdID, id uint) (*model.InventoryItem, error)
	ListItems(householdID uint, sheetID *uint) ([]model.InventoryItem, error)
	ListLowStock(householdID uint) ([]model.InventoryItem, error)
	UpdateItem(householdID, id uint, input InventoryItemInput) (*model.InventoryItem, error)
	AdjustQuantity(householdID, id uint, delta float64) (*model.InventoryItem, error)
	DeleteItem(householdID, id uint) error

	SetItemTags(householdID, itemID uint, tagIDs []uint) (*model.InventoryItem, error)
}

type inventoryService struct {
	db            *gorm.DB
	inventoryRepo repository.InventoryRepository
	tagRepo       repository.TagRepository
}

func NewInventoryService(db *gorm.DB, inventoryRepo repository.InventoryRepository, tagRepo repository.TagRepository) InventoryService {
	return &inventoryService{db: db, inventoryRepo: inventoryRepo, tagRepo: tagRepo}
}

func (s *inventoryService) CreateSheet(householdID, userID uint, name string) (*model.InventorySheet, error) {
	sheet := &model.InventorySheet{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        name,
	}
	if err := s.inventoryRepo.CreateSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *inventoryService) GetSheet(householdID, id uint) (*model.InventorySheet, error) {
	sheet, err := s.inventoryRepo.FindSheetByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSheetNotFound
		}
		return nil, err
	}
	return sheet, nil
}

func (s *inventoryService) ListSheets(householdID uint) ([]model.InventorySheet, error) {
	return s.inventoryRepo.ListSheets(householdID)
}

func (s *inventoryService) RenameSheet(householdID, id uint, name string) (*model.InventorySheet, error) {
	sheet, err := s.GetSheet(householdID, id)
	if err != nil {
		return nil, err
	}

	sheet.Name = name
	if err := s.inventoryRepo.UpdateSheet(sheet); err != nil {
		return nil, err
	}
	return sheet, nil
}

func (s *inventoryService) DeleteSheet(householdID, id uint) error {
	if _, err := s.GetSheet(householdID, id); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteSheet(householdID, id)
}

func (s *inventoryService) CreateItem(householdID, sheetID uint, input InventoryItemInput) (*model.InventoryItem, error) {
	if _, err := s.GetSheet(householdID, sheetID); err != nil {
		return nil, err
	}

	item := &model.InventoryItem{
		SheetID:     sheetID,
		HouseholdID: householdID,
		Name:        input.Name,
		PurchaseID:  input.PurchaseID,
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.LowThreshold != nil {
		item.LowThreshold = *input.LowThreshold
	}

	if err := s.inventoryRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetItem(householdID, id uint) (*model.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ListItems(householdID uint, sheetID *uint) ([]model.InventoryItem, error) {
	return s.inventoryRepo.ListItems(householdID, sheetID)
}

func (s *inventoryService) ListLowStock(householdID uint) ([]model.InventoryItem, error) {
	return s.inventoryRepo.ListLowStock(householdID)
}

func (s *inventoryService) UpdateItem(householdID, id uint, input InventoryItemInput) (*model.InventoryItem, error) {
	item, err := s.GetItem(householdID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = *input.Unit
	}
	if input.LowThreshold != nil {
		item.LowThreshold = *input.LowThreshold
	}
	if input.PurchaseID != nil {
		item.PurchaseID = input.PurchaseID
	}

	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustQuantity applies a relative change, clamping at zero.
func (s *inventoryService) AdjustQuantity(householdID, id uint, delta float64) (*model.InventoryItem, error) {
	item, err := s.GetItem(householdID, id)
	if err != nil {
		return nil, err
	}

	item.Quantity += delta
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	if err := s.inventoryRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) DeleteItem(householdID, id uint) error {
	if _, err := s.GetItem(householdID, id); err != nil {
		return err
	}
	return s.inventoryRepo.DeleteItem(householdID, id)
}

func (s *inventoryService) SetItemTags(householdID, itemID uint, tagIDs []uint) (*model.InventoryItem, error) {
	item, err := s.GetItem(householdID, itemID)
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

	if err := s.db.Model(item).Association("Tags").Replace(tags); err != nil {
		return nil, err
	}
	return s.GetItem(householdID, itemID)
}
