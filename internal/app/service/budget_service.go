package service

import (
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrSourceNotFound      = errors.New("budget source not found")
	ErrBudgetEntryNotFound = errors.New("budget entry not found")
	// ErrEntryHasPurchase blocks deleting an entry that still backs a
	// purchase. The purchase must be deleted first; that removes the
	// entry with it.
	ErrEntryHasPurchase = errors.New("budget entry is linked to a purchase")
)

type EntryInput struct {
	SourceID    uint
	Description string
	Amount      decimal.Decimal
	EntryType   model.EntryType
	Date        time.Time
}

// SourceSummary is one row of the budget summary: totals per source over
// the requested window.
type SourceSummary struct {
	SourceID   uint            `json:"source_id"`
	SourceName string          `json:"source_name"`
	Expenses   decimal.Decimal `json:"expenses"`
	Income     decimal.Decimal `json:"income"`
	Net        decimal.Decimal `json:"net"`
	EntryCount int             `json:"entry_count"`
}

type BudgetSummary struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	Net           decimal.Decimal `json:"net"`
	Sources       []SourceSummary `json:"sources"`
}

type BudgetService interface {
	CreateSource(householdID, userID uint, name string, kind model.BudgetSourceKind) (*model.BudgetSource, error)
	GetSource(householdID, id uint) (*model.BudgetSource, error)
	ListSources(householdID uint) ([]model.BudgetSource, error)
	UpdateSource(householdID, id uint, name string) (*model.BudgetSource, error)
	DeleteSource(householdID, id uint) error
	SetSourceTags(householdID, id uint, tagIDs []uint) (*model.BudgetSource, error)

	CreateEntry(householdID uint, input EntryInput) (*model.BudgetEntry, error)
	GetEntry(householdID, id uint) (*model.BudgetEntry, error)
	ListEntries(householdID uint, sourceID *uint, from, to *time.Time) ([]model.BudgetEntry, error)
	UpdateEntry(householdID, id uint, input EntryInput) (*model.BudgetEntry, error)
	DeleteEntry(householdID, id uint) error

	Summary(householdID uint, from, to *time.Time) (*BudgetSummary, error)
}

type budgetService struct {
	db         *gorm.DB
	budgetRepo repository.BudgetRepository
	tagRepo    repository.TagRepository
}

func NewBudgetService(db *gorm.DB, budgetRepo repository.BudgetRepository, tagRepo repository.TagRepository) BudgetService {
	return &budgetService{db: db, budgetRepo: budgetRepo, tagRepo: tagRepo}
}

func (s *budgetService) CreateSource(householdID, userID uint, name string, kind model.BudgetSourceKind) (*model.BudgetSource, error) {
	if kind == "" {
		kind = model.SourceKindManual
	}
	source := &model.BudgetSource{
		HouseholdID: householdID,
		UserID:      userID,
		Name:        name,
		Kind:        kind,
	}
	if err := s.budgetRepo.CreateSource(source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *budgetService) GetSource(householdID, id uint) (*model.BudgetSource, error) {
	source, err := s.budgetRepo.FindSourceByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	return source, nil
}

func (s *budgetService) ListSources(householdID uint) ([]model.BudgetSource, error) {
	return s.budgetRepo.ListSources(householdID)
}

func (s *budgetService) UpdateSource(householdID, id uint, name string) (*model.BudgetSource, error) {
	source, err := s.GetSource(householdID, id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		source.Name = name
	}
	if err := s.budgetRepo.UpdateSource(source); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *budgetService) DeleteSource(householdID, id uint) error {
	if _, err := s.GetSource(householdID, id); err != nil {
		return err
	}
	return s.budgetRepo.DeleteSource(householdID, id)
}

// SetSourceTags replaces the source's tag set. Every tag must belong to
// the same household.
func (s *budgetService) SetSourceTags(householdID, id uint, tagIDs []uint) (*model.BudgetSource, error) {
	source, err := s.GetSource(householdID, id)
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

	if err := s.db.Model(source).Association("Tags").Replace(tags); err != nil {
		return nil, err
	}
	return s.GetSource(householdID, id)
}

func (s *budgetService) CreateEntry(householdID uint, input EntryInput) (*model.BudgetEntry, error) {
	if _, err := s.GetSource(householdID, input.SourceID); err != nil {
		return nil, err
	}

	entryType := input.EntryType
	if entryType == "" {
		entryType = model.EntryExpense
	}
	entry := &model.BudgetEntry{
		HouseholdID: householdID,
		SourceID:    input.SourceID,
		Description: input.Description,
		Amount:      input.Amount,
		EntryType:   entryType,
		Date:        normalizeDay(input.Date),
	}
	if err := s.budgetRepo.CreateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *budgetService) GetEntry(householdID, id uint) (*model.BudgetEntry, error) {
	entry, err := s.budgetRepo.FindEntryByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetEntryNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *budgetService) ListEntries(householdID uint, sourceID *uint, from, to *time.Time) ([]model.BudgetEntry, error) {
	return s.budgetRepo.ListEntries(householdID, sourceID, from, to)
}

func (s *budgetService) UpdateEntry(householdID, id uint, input EntryInput) (*model.BudgetEntry, error) {
	entry, err := s.GetEntry(householdID, id)
	if err != nil {
		return nil, err
	}

	if input.SourceID != 0 && input.SourceID != entry.SourceID {
		if _, err := s.GetSource(householdID, input.SourceID); err != nil {
			return nil, err
		}
		entry.SourceID = input.SourceID
	}
	if input.Description != "" {
		entry.Description = input.Description
	}
	if !input.Amount.IsZero() {
		entry.Amount = input.Amount
	}
	if input.EntryType != "" {
		entry.EntryType = input.EntryType
	}
	if !input.Date.IsZero() {
		entry.Date = normalizeDay(input.Date)
	}

	if err := s.budgetRepo.UpdateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteEntry refuses to remove an entry that backs a purchase; the
// linked purchase must go first, which takes the entry with it.
func (s *budgetService) DeleteEntry(householdID, id uint) error {
	entry, err := s.GetEntry(householdID, id)
	if err != nil {
		return err
	}

	if entry.PurchaseID != nil {
		logger.Warn("Refusing to delete entry linked to a purchase", map[string]interface{}{
			"entry_id":    entry.ID,
			"purchase_id": *entry.PurchaseID,
		})
		return ErrEntryHasPurchase
	}
	return s.budgetRepo.DeleteEntry(householdID, id)
}

// Summary aggregates entries per source over the window. Sums are exact
// decimal arithmetic, never floats.
func (s *budgetService) Summary(householdID uint, from, to *time.Time) (*BudgetSummary, error) {
	entries, err := s.budgetRepo.ListEntries(householdID, nil, from, to)
	if err != nil {
		return nil, err
	}

	perSource := make(map[uint]*SourceSummary)
	order := make([]uint, 0)
	summary := &BudgetSummary{
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
	}

	for _, entry := range entries {
		row, ok := perSource[entry.SourceID]
		if !ok {
			row = &SourceSummary{
				SourceID: entry.SourceID,
				Expenses: decimal.Zero,
				Income:   decimal.Zero,
			}
			if entry.Source != nil {
				row.SourceName = entry.Source.Name
			}
			perSource[entry.SourceID] = row
			order = append(order, entry.SourceID)
		}

		row.EntryCount++
		switch entry.EntryType {
		case model.EntryIncome:
			row.Income = row.Income.Add(entry.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(entry.Amount)
		default:
			row.Expenses = row.Expenses.Add(entry.Amount)
			summary.TotalExpenses = summary.TotalExpenses.Add(entry.Amount)
		}
	}

	summary.Sources = make([]SourceSummary, 0, len(order))
	for _, sourceID := range order {
		row := perSource[sourceID]
		row.Net = row.Income.Sub(row.Expenses)
		summary.Sources = append(summary.Sources, *row)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}
