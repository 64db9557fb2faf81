package service

import (
	"errors"
	"strings"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrStopNotFound       = errors.New("stop not found")
	ErrStoreNotFound      = errors.New("store not found")
	ErrPurchaseNotFound   = errors.New("purchase not found")
	ErrStopStoreRequired  = errors.New("stop requires a store")
	ErrEntryNotFound      = errors.New("budget entry not found")
	ErrEntryAlreadyLinked = errors.New("budget entry already linked to a purchase")
)

// StopInput names a store either by id or by identity fields. When only
// the identity is given the store is created on demand.
type StopInput struct {
	StoreID   *uint  `json:"store_id"`
	StoreName string `json:"store_name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
}

type CreateTripInput struct {
	Date   time.Time
	Driver string
	Notes  string
	Stops  []StopInput
}

type PurchaseInput struct {
	Brand         string
	Name          string
	Count         int
	Unit          string
	Price         decimal.Decimal
	Taxed         bool
	BudgetEntryID *uint // pre-existing entry; nil means create one
}

type ReceiptService interface {
	CreateTrip(householdID, userID uint, input CreateTripInput) (*model.Trip, error)
	GetTrip(householdID, id uint) (*model.Trip, error)
	ListTrips(householdID uint) ([]model.Trip, error)
	UpdateTrip(householdID, id uint, date *time.Time, driver, notes *string) (*model.Trip, error)
	DeleteTrip(householdID, id uint) error

	AddStop(householdID, id uint, input StopInput) (*model.Stop, error)
	DeleteStop(householdID, stopID uint) error

	CreatePurchase(householdID, userID, stopID uint, input PurchaseInput) (*model.Purchase, error)
	GetPurchase(householdID, id uint) (*model.Purchase, error)
	UpdatePurchase(householdID, id uint, input PurchaseInput) (*model.Purchase, error)
	DeletePurchase(householdID, id uint) error
	AttachPhoto(householdID, purchaseID uint, photoKey string) (*model.Purchase, error)

	ListStores(householdID uint) ([]model.Store, error)
	Brands(householdID uint) ([]string, error)
	Units(householdID uint) ([]string, error)
	Drivers(householdID uint) ([]string, error)
}

type receiptService struct {
	db        *gorm.DB
	tripRepo  repository.TripRepository
	storeRepo repository.StoreRepository
	taskRepo  repository.TaskRepository
}

func NewReceiptService(
	db *gorm.DB,
	tripRepo repository.TripRepository,
	storeRepo repository.StoreRepository,
	taskRepo repository.TaskRepository,
) ReceiptService {
	return &receiptService{
		db:        db,
		tripRepo:  tripRepo,
		storeRepo: storeRepo,
		taskRepo:  taskRepo,
	}
}

// TripTaskTitle derives the calendar title for a trip from its store
// names. Pure; the caller supplies names already loaded.
func TripTaskTitle(storeNames []string) string {
	if len(storeNames) == 0 {
		return "Shopping trip"
	}
	return "Shopping trip: " + strings.Join(storeNames, ", ")
}

// CreateTrip inserts the trip, one stop per store, and the linked
// calendar task in a single transaction. Stores are created on demand.
func (s *receiptService) CreateTrip(householdID, userID uint, input CreateTripInput) (*model.Trip, error) {
	if len(input.Stops) == 0 {
		return nil, ErrStopStoreRequired
	}

	var trip *model.Trip
	err := s.db.Transaction(func(tx *gorm.DB) error {
		trip = &model.Trip{
			HouseholdID: householdID,
			UserID:      userID,
			Date:        normalizeDay(input.Date),
			Driver:      input.Driver,
			Notes:       input.Notes,
		}
		if err := tx.Create(trip).Error; err != nil {
			return err
		}

		storeNames := make([]string, 0, len(input.Stops))
		for _, stopInput := range input.Stops {
			store, err := s.resolveStoreTx(tx, householdID, stopInput)
			if err != nil {
				return err
			}
			stop := &model.Stop{TripID: trip.ID, StoreID: store.ID}
			if err := tx.Create(stop).Error; err != nil {
				return err
			}
			storeNames = append(storeNames, store.Name)
		}

		task := &model.Task{
			HouseholdID: householdID,
			UserID:      userID,
			Title:       TripTaskTitle(storeNames),
			Date:        trip.Date,
			TaskType:    model.TaskTrip,
			TripID:      &trip.ID,
		}
		return tx.Create(task).Error
	})
	if err != nil {
		logger.Error("Failed to create trip", err, map[string]interface{}{
			"household_id": householdID,
		})
		return nil, err
	}

	logger.Info("Trip created", map[string]interface{}{
		"trip_id":      trip.ID,
		"household_id": householdID,
		"stops":        len(input.Stops),
	})
	return s.tripRepo.FindByID(householdID, trip.ID)
}

func (s *receiptService) GetTrip(householdID, id uint) (*model.Trip, error) {
	trip, err := s.tripRepo.FindByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

func (s *receiptService) ListTrips(householdID uint) ([]model.Trip, error) {
	return s.tripRepo.List(householdID)
}

// UpdateTrip patches trip fields. A date change is mirrored onto the
// linked trip task so the calendar invariant holds.
func (s *receiptService) UpdateTrip(householdID, id uint, date *time.Time, driver, notes *string) (*model.Trip, error) {
	trip, err := s.GetTrip(householdID, id)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if date != nil {
			trip.Date = normalizeDay(*date)
			err := tx.Model(&model.Task{}).
				Where("trip_id = ?", trip.ID).
				Update("date", trip.Date).Error
			if err != nil {
				return err
			}
		}
		if driver != nil {
			trip.Driver = *driver
		}
		if notes != nil {
			trip.Notes = *notes
		}
		return tx.Save(trip).Error
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// DeleteTrip removes the trip, its stops, their purchases, the budget
// entries behind those purchases, and the linked calendar task. Budget
// sources stay.
func (s *receiptService) DeleteTrip(householdID, id uint) error {
	trip, err := s.GetTrip(householdID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, stop := range trip.Stops {
			if err := deleteStopTx(tx, &stop); err != nil {
				return err
			}
		}
		err := tx.Where("trip_id = ?", trip.ID).Delete(&model.Task{}).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&model.Trip{}, trip.ID).Error; err != nil {
			return err
		}

		logger.Info("Trip deleted", map[string]interface{}{
			"trip_id":      trip.ID,
			"household_id": householdID,
		})
		return nil
	})
}

func (s *receiptService) AddStop(householdID, id uint, input StopInput) (*model.Stop, error) {
	trip, err := s.GetTrip(householdID, id)
	if err != nil {
		return nil, err
	}

	var stop *model.Stop
	err = s.db.Transaction(func(tx *gorm.DB) error {
		store, err := s.resolveStoreTx(tx, householdID, input)
		if err != nil {
			return err
		}
		stop = &model.Stop{TripID: trip.ID, StoreID: store.ID}
		return tx.Create(stop).Error
	})
	if err != nil {
		return nil, err
	}
	return s.tripRepo.FindStopByID(householdID, stop.ID)
}

func (s *receiptService) DeleteStop(householdID, stopID uint) error {
	stop, err := s.tripRepo.FindStopByID(householdID, stopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStopNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return deleteStopTx(tx, stop)
	})
}

// CreatePurchase is the heart of the ledger link. In one transaction: the
// store's budget source is created if missing, the entry is inserted
// (unless the caller supplied one), the purchase is inserted referencing
// the entry, and the entry is back-linked with the purchase id.
func (s *receiptService) CreatePurchase(householdID, userID, stopID uint, input PurchaseInput) (*model.Purchase, error) {
	stop, err := s.tripRepo.FindStopByID(householdID, stopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		return nil, err
	}

	var trip model.Trip
	if err := s.db.First(&trip, stop.TripID).Error; err != nil {
		return nil, err
	}

	var purchase *model.Purchase
	err = s.db.Transaction(func(tx *gorm.DB) error {
		entry, err := s.resolveEntryTx(tx, householdID, userID, stop, &trip, input)
		if err != nil {
			return err
		}

		count := input.Count
		if count <= 0 {
			count = 1
		}
		purchase = &model.Purchase{
			HouseholdID:   householdID,
			StopID:        stop.ID,
			BudgetEntryID: entry.ID,
			Brand:         input.Brand,
			Name:          input.Name,
			Count:         count,
			Unit:          input.Unit,
			Price:         input.Price,
			Taxed:         input.Taxed,
		}
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}

		// Back-link: the entry now points at the purchase it funded.
		return tx.Model(&model.BudgetEntry{}).
			Where("id = ?", entry.ID).
			Update("purchase_id", purchase.ID).Error
	})
	if err != nil {
		logger.Error("Failed to create purchase", err, map[string]interface{}{
			"household_id": householdID,
			"stop_id":      stopID,
		})
		return nil, err
	}

	logger.Info("Purchase created", map[string]interface{}{
		"purchase_id":     purchase.ID,
		"budget_entry_id": purchase.BudgetEntryID,
		"stop_id":         stopID,
	})
	return purchase, nil
}

// UpdatePurchase patches line-item fields and keeps the backing entry's
// amount in sync with the price.
func (s *receiptService) UpdatePurchase(householdID, id uint, input PurchaseInput) (*model.Purchase, error) {
	purchase, err := s.tripRepo.FindPurchaseByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if input.Name != "" {
			purchase.Name = input.Name
		}
		purchase.Brand = input.Brand
		purchase.Unit = input.Unit
		purchase.Taxed = input.Taxed
		if input.Count > 0 {
			purchase.Count = input.Count
		}
		if !input.Price.IsZero() && !input.Price.Equal(purchase.Price) {
			purchase.Price = input.Price
			err := tx.Model(&model.BudgetEntry{}).
				Where("id = ?", purchase.BudgetEntryID).
				Update("amount", input.Price).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(purchase).Error
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// DeletePurchase removes the line item together with its budget entry.
func (s *receiptService) DeletePurchase(householdID, id uint) error {
	purchase, err := s.tripRepo.FindPurchaseByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPurchaseNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Purchase{}, purchase.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.BudgetEntry{}, purchase.BudgetEntryID).Error
	})
}

func (s *receiptService) GetPurchase(householdID, id uint) (*model.Purchase, error) {
	purchase, err := s.tripRepo.FindPurchaseByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return purchase, nil
}

func (s *receiptService) AttachPhoto(householdID, purchaseID uint, photoKey string) (*model.Purchase, error) {
	purchase, err := s.GetPurchase(householdID, purchaseID)
	if err != nil {
		return nil, err
	}

	purchase.PhotoKey = photoKey
	if err := s.db.Save(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *receiptService) ListStores(householdID uint) ([]model.Store, error) {
	return s.storeRepo.List(householdID)
}

func (s *receiptService) Brands(householdID uint) ([]string, error) {
	return s.tripRepo.DistinctBrands(householdID)
}

func (s *receiptService) Units(householdID uint) ([]string, error) {
	return s.tripRepo.DistinctUnits(householdID)
}

func (s *receiptService) Drivers(householdID uint) ([]string, error) {
	return s.tripRepo.DistinctDrivers(householdID)
}

func (s *receiptService) resolveStoreTx(tx *gorm.DB, householdID uint, input StopInput) (*model.Store, error) {
	if input.StoreID != nil {
		var store model.Store
		err := tx.Where("household_id = ?", householdID).First(&store, *input.StoreID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStoreNotFound
			}
			return nil, err
		}
		return &store, nil
	}

	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, ErrStopStoreRequired
	}

	// A tx-scoped repository keeps the lookup-or-create inside the
	// surrounding transaction.
	return repository.NewStoreRepository(tx).LookupOrCreate(householdID, name, input.Street, input.City, input.State)
}

// resolveEntryTx returns the budget entry a new purchase will reference:
// either the caller-supplied one (validated for household and linkage) or
// a freshly inserted expense entry under the store's source.
func (s *receiptService) resolveEntryTx(tx *gorm.DB, householdID, userID uint, stop *model.Stop, trip *model.Trip, input PurchaseInput) (*model.BudgetEntry, error) {
	if input.BudgetEntryID != nil {
		var entry model.BudgetEntry
		err := tx.Where("household_id = ?", householdID).First(&entry, *input.BudgetEntryID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEntryNotFound
			}
			return nil, err
		}
		if entry.PurchaseID != nil {
			return nil, ErrEntryAlreadyLinked
		}
		return &entry, nil
	}

	source, err := repository.NewBudgetRepository(tx).LookupOrCreateSource(householdID, userID, stop.Store.Name, model.SourceKindStore)
	if err != nil {
		return nil, err
	}

	entry := &model.BudgetEntry{
		HouseholdID: householdID,
		SourceID:    source.ID,
		Description: input.Name,
		Amount:      input.Price,
		EntryType:   model.EntryExpense,
		Date:        trip.Date,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// deleteStopTx removes a stop, its purchases, and their budget entries.
func deleteStopTx(tx *gorm.DB, stop *model.Stop) error {
	var purchases []model.Purchase
	if err := tx.Where("stop_id = ?", stop.ID).Find(&purchases).Error; err != nil {
		return err
	}

	for _, purchase := range purchases {
		if err := tx.Delete(&model.Purchase{}, purchase.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.BudgetEntry{}, purchase.BudgetEntryID).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&model.Stop{}, stop.ID).Error
}

// normalizeDay truncates to midnight UTC so date-typed columns compare
// cleanly.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
