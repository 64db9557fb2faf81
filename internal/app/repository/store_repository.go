package repository

import (
	"errors"
	"strings"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(householdID, id uint) (*model.Store, error)
	List(householdID uint) ([]model.Store, error)
	Update(store *model.Store) error
	Delete(householdID, id uint) error

	// LookupOrCreate returns the existing store matching the household
	// identity (name, street, city) or inserts a new row. Idempotent.
	LookupOrCreate(householdID uint, name, street, city, state string) (*model.Store, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store", err, map[string]interface{}{
			"household_id": store.HouseholdID,
			"name":         store.Name,
		})
		return err
	}
	return nil
}

func (r *storeRepository) FindByID(householdID, id uint) (*model.Store, error) {
	var store model.Store
	err := r.db.Where("household_id = ?", householdID).First(&store, id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) List(householdID uint) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("household_id = ?", householdID).Order("name ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepository) Update(store *model.Store) error {
	return r.db.Save(store).Error
}

func (r *storeRepository) Delete(householdID, id uint) error {
	return r.db.Where("household_id = ?", householdID).Delete(&model.Store{}, id).Error
}

func (r *storeRepository) LookupOrCreate(householdID uint, name, street, city, state string) (*model.Store, error) {
	name = strings.TrimSpace(name)

	var store model.Store
	err := r.db.Where(
		"household_id = ? AND name = ? AND street = ? AND city = ?",
		householdID, name, street, city,
	).First(&store).Error
	if err == nil {
		return &store, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	store = model.Store{
		HouseholdID: householdID,
		Name:        name,
		Street:      street,
		City:        city,
		State:       state,
	}
	if err := r.db.Create(&store).Error; err != nil {
		logger.Error("Failed to create store on demand", err, map[string]interface{}{
			"household_id": householdID,
			"name":         name,
		})
		return nil, err
	}

	logger.Debug("Store created on demand", map[string]interface{}{
		"store_id":     store.ID,
		"household_id": householdID,
		"name":         name,
	})
	return &store, nil
}
