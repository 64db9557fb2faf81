package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type ShoppingRepository interface {
	CreateList(list *model.ShoppingList) error
	FindListByID(householdID, id uint) (*model.ShoppingList, error)
	ListLists(householdID uint) ([]model.ShoppingList, error)
	UpdateList(list *model.ShoppingList) error
	DeleteList(householdID, id uint) error

	CreateItem(item *model.ShoppingListItem) error
	FindItemByID(listID, id uint) (*model.ShoppingListItem, error)
	UpdateItem(item *model.ShoppingListItem) error
	DeleteItem(listID, id uint) error
}

type shoppingRepository struct {
	db *gorm.DB
}

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateList(list *model.ShoppingList) error {
	return r.db.Create(list).Error
}

func (r *shoppingRepository) FindListByID(householdID, id uint) (*model.ShoppingList, error) {
	var list model.ShoppingList
	err := r.db.Where("household_id = ?", householdID).
		Preload("Items").
		Preload("Items.InventoryItem").
		First(&list, id).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *shoppingRepository) ListLists(householdID uint) ([]model.ShoppingList, error) {
	var lists []model.ShoppingList
	err := r.db.Where("household_id = ?", householdID).Order("created_at DESC").Find(&lists).Error
	return lists, err
}

func (r *shoppingRepository) UpdateList(list *model.ShoppingList) error {
	return r.db.Save(list).Error
}

func (r *shoppingRepository) DeleteList(householdID, id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&model.ShoppingListItem{}).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Delete(&model.ShoppingList{}, id).Error
	})
}

func (r *shoppingRepository) CreateItem(item *model.ShoppingListItem) error {
	return r.db.Create(item).Error
}

func (r *shoppingRepository) FindItemByID(listID, id uint) (*model.ShoppingListItem, error) {
	var item model.ShoppingListItem
	err := r.db.Where("list_id = ?", listID).First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) UpdateItem(item *model.ShoppingListItem) error {
	return r.db.Save(item).Error
}

func (r *shoppingRepository) DeleteItem(listID, id uint) error {
	return r.db.Where("list_id = ?", listID).Delete(&model.ShoppingListItem{}, id).Error
}
