package repository

import (
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

// TripRepository covers the read side of the trip graph. Multi-row
// writes (create trip + stops, cascade deletes, purchase + entry
// back-link) live in the receipt service inside transactions.
type TripRepository interface {
	FindByID(householdID, id uint) (*model.Trip, error)
	List(householdID uint) ([]model.Trip, error)
	Update(trip *model.Trip) error

	FindStopByID(householdID, id uint) (*model.Stop, error)
	FindPurchaseByID(householdID, id uint) (*model.Purchase, error)
	ListPurchasesByStop(stopID uint) ([]model.Purchase, error)

	DistinctBrands(householdID uint) ([]string, error)
	DistinctUnits(householdID uint) ([]string, error)
	DistinctDrivers(householdID uint) ([]string, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) FindByID(householdID, id uint) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.Where("household_id = ?", householdID).
		Preload("Stops").
		Preload("Stops.Store").
		Preload("Stops.Purchases").
		First(&trip, id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) List(householdID uint) ([]model.Trip, error) {
	var trips []model.Trip
	err := r.db.Where("household_id = ?", householdID).
		Preload("Stops").
		Preload("Stops.Store").
		Order("date DESC").
		Find(&trips).Error
	return trips, err
}

func (r *tripRepository) Update(trip *model.Trip) error {
	return r.db.Save(trip).Error
}

func (r *tripRepository) FindStopByID(householdID, id uint) (*model.Stop, error) {
	var stop model.Stop
	err := r.db.
		Joins("JOIN trips ON trips.id = stops.trip_id").
		Where("trips.household_id = ?", householdID).
		Preload("Store").
		Preload("Purchases").
		First(&stop, "stops.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *tripRepository) FindPurchaseByID(householdID, id uint) (*model.Purchase, error) {
	var purchase model.Purchase
	err := r.db.Where("household_id = ?", householdID).First(&purchase, id).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *tripRepository) ListPurchasesByStop(stopID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("stop_id = ?", stopID).Order("id ASC").Find(&purchases).Error
	return purchases, err
}

func (r *tripRepository) DistinctBrands(householdID uint) ([]string, error) {
	return r.distinctPurchaseColumn(householdID, "brand")
}

func (r *tripRepository) DistinctUnits(householdID uint) ([]string, error) {
	return r.distinctPurchaseColumn(householdID, "unit")
}

func (r *tripRepository) distinctPurchaseColumn(householdID uint, column string) ([]string, error) {
	var values []string
	err := r.db.Model(&model.Purchase{}).
		Where("household_id = ? AND "+column+" <> ''", householdID).
		Distinct(column).
		Order(column+" ASC").
		Pluck(column, &values).Error
	return values, err
}

func (r *tripRepository) DistinctDrivers(householdID uint) ([]string, error) {
	var values []string
	err := r.db.Model(&model.Trip{}).
		Where("household_id = ? AND driver <> ''", householdID).
		Distinct("driver").
		Order("driver ASC").
		Pluck("driver", &values).Error
	return values, err
}
