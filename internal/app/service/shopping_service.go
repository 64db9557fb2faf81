package service

import (
	"errors"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrListNotFound     = errors.New("shopping list not found")
	ErrListItemNotFound = errors.New("shopping list item not found")
	// ErrListItemUnnamed: an item needs either a manual name or an
	// inventory item reference.
	ErrListItemUnnamed = errors.New("shopping list item requires a name or an inventory item")
)

type ListItemInput struct {
	Name            string
	InventoryItemID *uint
	Quantity        *float64
	Checked         *bool
}

type ShoppingService interface {
	CreateList(householdID, userID uint, name string) (*model.ShoppingList, error)
	GetList(householdID, id uint) (*model.ShoppingList, error)
	ListLists(householdID uint) ([]model.ShoppingList, error)
	RenameList(householdID, id uint, name string) (*model.ShoppingList, error)
	DeleteList(householdID, id uint) error

	AddItem(householdID, listID uint, input ListItemInput) (*model.ShoppingListItem, error)
	UpdateItem(householdID, listID, itemID uint, input ListItemInput) (*model.ShoppingListItem, error)
	DeleteItem(householdID, listID, itemID uint) error

	// Generate appends one unchecked item per low-stock inventory item
	// not already on the list.
	Generate(householdID, listID uint) (*model.ShoppingList, error)
}

type shoppingService struct {
	shoppingRepo  repository.ShoppingRepository
	inventoryRepo repository.InventoryRepository
}

func NewShoppingService(shoppingRepo repository.ShoppingRepository, inventoryRepo repository.InventoryRepository) ShoppingService {
	return &shoppingService{shoppingRepo: shoppingRepo, inventoryRepo: inventoryRepo}
}

func (s *shoppingService) CreateList(householdID, userID uint, name string) (*model.ShoppingList, error) {
	list := &model.ShoppingList{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        name,
	}
	if err := s.shoppingRepo.CreateList(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *shoppingService) GetList(householdID, id uint) (*model.ShoppingList, error) {
	list, err := s.shoppingRepo.FindListByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return list, nil
}

func (s *shoppingService) ListLists(householdID uint) ([]model.ShoppingList, error) {
	return s.shoppingRepo.ListLists(householdID)
}

func (s *shoppingService) RenameList(householdID, id uint, name string) (*model.ShoppingList, error) {
	list, err := s.GetList(householdID, id)
	if err != nil {
		return nil, err
	}

	list.Name = name
	if err := s.shoppingRepo.UpdateList(list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *shoppingService) DeleteList(householdID, id uint) error {
	if _, err := s.GetList(householdID, id); err != nil {
		return err
	}
	return s.shoppingRepo.DeleteList(householdID, id)
}

func (s *shoppingService) AddItem(householdID, listID uint, input ListItemInput) (*model.ShoppingListItem, error) {
	list, err := s.GetList(householdID, listID)
	if err != nil {
		return nil, err
	}

	if input.Name == "" && input.InventoryItemID == nil {
		return nil, ErrListItemUnnamed
	}
	if input.InventoryItemID != nil {
		if _, err := s.inventoryRepo.FindItemByID(householdID, *input.InventoryItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInventoryItemNotFound
			}
			return nil, err
		}
	}

	item := &model.ShoppingListItem{
		ListID:          list.ID,
		Name:            input.Name,
		InventoryItemID: input.InventoryItemID,
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if err := s.shoppingRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingService) UpdateItem(householdID, listID, itemID uint, input ListItemInput) (*model.ShoppingListItem, error) {
	if _, err := s.GetList(householdID, listID); err != nil {
		return nil, err
	}

	item, err := s.shoppingRepo.FindItemByID(listID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListItemNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Checked != nil {
		item.Checked = *input.Checked
	}
	if err := s.shoppingRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *shoppingService) DeleteItem(householdID, listID, itemID uint) error {
	if _, err := s.GetList(householdID, listID); err != nil {
		return err
	}
	if _, err := s.shoppingRepo.FindItemByID(listID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListItemNotFound
		}
		return err
	}
	return s.shoppingRepo.DeleteItem(listID, itemID)
}

func (s *shoppingService) Generate(householdID, listID uint) (*model.ShoppingList, error) {
	list, err := s.GetList(householdID, listID)
	if err != nil {
		return nil, err
	}

	low, err := s.inventoryRepo.ListLowStock(householdID)
	if err != nil {
		return nil, err
	}

	present := make(map[uint]bool, len(list.Items))
	for _, item := range list.Items {
		if item.InventoryItemID != nil {
			present[*item.InventoryItemID] = true
		}
	}

	added := 0
	for _, stock := range low {
		if present[stock.ID] {
			continue
		}
		needed := stock.LowThreshold - stock.Quantity
		if needed <= 0 {
			needed = 1
		}
		item := &model.ShoppingListItem{
			ListID:          list.ID,
			Name:            stock.Name,
			InventoryItemID: &stock.ID,
			Quantity:        needed,
		}
		if err := s.shoppingRepo.CreateItem(item); err != nil {
			return nil, err
		}
		added++
	}

	logger.Info("Shopping list generated from low stock", map[string]interface{}{
		"list_id": list.ID,
		"added":   added,
	})
	return s.GetList(householdID, listID)
}
