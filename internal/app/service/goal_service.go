package service

import (
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound         = errors.New("goal not found")
	ErrGoalCategoryNotFound = errors.New("goal category not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrInvalidProgress      = errors.New("progress must be between 0 and 100")
	ErrInvalidGoalStatus    = errors.New("invalid goal status")
)

type GoalInput struct {
	Title      string
	CategoryID *uint
	TargetDate *time.Time
	Status     *model.GoalStatus
	Progress   *int
	Note       string // recorded in history when status/progress change
}

type GoalService interface {
	CreateCategory(householdID uint, name string) (*model.GoalCategory, error)
	ListCategories(householdID uint) ([]model.GoalCategory, error)
	RenameCategory(householdID, id uint, name string) (*model.GoalCategory, error)
	DeleteCategory(householdID, id uint) error

	Create(householdID, userID uint, input GoalInput) (*model.Goal, error)
	Get(householdID, id uint) (*model.Goal, error)
	List(householdID uint, categoryID *uint, status *model.GoalStatus) ([]model.Goal, error)
	Update(householdID, id uint, input GoalInput) (*model.Goal, error)
	Delete(householdID, id uint) error

	AddMilestone(householdID, goalID uint, title string) (*model.Milestone, error)
	UpdateMilestone(householdID, goalID, milestoneID uint, title *string, done *bool) (*model.Milestone, error)
	DeleteMilestone(householdID, goalID, milestoneID uint) error

	History(householdID, goalID uint) ([]model.GoalHistory, error)
	SetTags(householdID, goalID uint, tagIDs []uint) (*model.Goal, error)
}

type goalService struct {
	db       *gorm.DB
	goalRepo repository.GoalRepository
	tagRepo  repository.TagRepository
}

func NewGoalService(db *gorm.DB, goalRepo repository.GoalRepository, tagRepo repository.TagRepository) GoalService {
	return &goalService{db: db, goalRepo: goalRepo, tagRepo: tagRepo}
}

func (s *goalService) CreateCategory(householdID uint, name string) (*model.GoalCategory, error) {
	category := &model.GoalCategory{HouseholdID: householdID, Name: name}
	if err := s.goalRepo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *goalService) ListCategories(householdID uint) ([]model.GoalCategory, error) {
	return s.goalRepo.ListCategories(householdID)
}

func (s *goalService) RenameCategory(householdID, id uint, name string) (*model.GoalCategory, error) {
	category, err := s.goalRepo.FindCategoryByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalCategoryNotFound
		}
		return nil, err
	}

	category.Name = name
	if err := s.goalRepo.UpdateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *goalService) DeleteCategory(householdID, id uint) error {
	if _, err := s.goalRepo.FindCategoryByID(householdID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGoalCategoryNotFound
		}
		return err
	}
	return s.goalRepo.DeleteCategory(householdID, id)
}

func (s *goalService) Create(householdID, userID uint, input GoalInput) (*model.Goal, error) {
	if input.CategoryID != nil {
		if _, err := s.goalRepo.FindCategoryByID(householdID, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGoalCategoryNotFound
			}
			return nil, err
		}
	}

	goal := &model.Goal{
		HouseholdID: householdID,
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Status:      model.GoalActive,
		TargetDate:  input.TargetDate,
	}
	if err := s.goalRepo.CreateGoal(goal); err != nil {
		return nil, err
	}

	history := &model.GoalHistory{
		GoalID:   goal.ID,
		Status:   goal.Status,
		Progress: 0,
		Note:     "created",
	}
	if err := s.goalRepo.AppendHistory(history); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Get(householdID, id uint) (*model.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

func (s *goalService) List(householdID uint, categoryID *uint, status *model.GoalStatus) ([]model.Goal, error) {
	return s.goalRepo.ListGoals(householdID, categoryID, status)
}

// Update patches the goal. Status or progress changes append a history
// row; achieving a goal pins progress at 100.
func (s *goalService) Update(householdID, id uint, input GoalInput) (*model.Goal, error) {
	goal, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Title != "" {
		goal.Title = input.Title
	}
	if input.CategoryID != nil {
		if _, err := s.goalRepo.FindCategoryByID(householdID, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGoalCategoryNotFound
			}
			return nil, err
		}
		goal.CategoryID = input.CategoryID
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Status != nil {
		if !validGoalStatus(*input.Status) {
			return nil, ErrInvalidGoalStatus
		}
		if *input.Status != goal.Status {
			goal.Status = *input.Status
			if goal.Status == model.GoalAchieved {
				goal.Progress = 100
			}
			changed = true
		}
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, ErrInvalidProgress
		}
		if *input.Progress != goal.Progress {
			goal.Progress = *input.Progress
			changed = true
		}
	}

	if err := s.goalRepo.UpdateGoal(goal); err != nil {
		return nil, err
	}

	if changed {
		history := &model.GoalHistory{
			GoalID:   goal.ID,
			Status:   goal.Status,
			Progress: goal.Progress,
			Note:     input.Note,
		}
		if err := s.goalRepo.AppendHistory(history); err != nil {
			return nil, err
		}
	}
	return goal, nil
}

func (s *goalService) Delete(householdID, id uint) error {
	if _, err := s.Get(householdID, id); err != nil {
		return err
	}
	return s.goalRepo.DeleteGoal(householdID, id)
}

func (s *goalService) AddMilestone(householdID, goalID uint, title string) (*model.Milestone, error) {
	goal, err := s.Get(householdID, goalID)
	if err != nil {
		return nil, err
	}

	milestone := &model.Milestone{
		GoalID:   goal.ID,
		Title:    title,
		Position: len(goal.Milestones),
	}
	if err := s.goalRepo.CreateMilestone(milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *goalService) UpdateMilestone(householdID, goalID, milestoneID uint, title *string, done *bool) (*model.Milestone, error) {
	if _, err := s.Get(householdID, goalID); err != nil {
		return nil, err
	}

	milestone, err := s.goalRepo.FindMilestoneByID(goalID, milestoneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, err
	}

	if title != nil {
		milestone.Title = *title
	}
	if done != nil {
		milestone.Done = *done
	}
	if err := s.goalRepo.UpdateMilestone(milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *goalService) DeleteMilestone(householdID, goalID, milestoneID uint) error {
	if _, err := s.Get(householdID, goalID); err != nil {
		return err
	}
	if _, err := s.goalRepo.FindMilestoneByID(goalID, milestoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMilestoneNotFound
		}
		return err
	}
	return s.goalRepo.DeleteMilestone(goalID, milestoneID)
}

func (s *goalService) History(householdID, goalID uint) ([]model.GoalHistory, error) {
	if _, err := s.Get(householdID, goalID); err != nil {
		return nil, err
	}
	return s.goalRepo.ListHistory(goalID)
}

func (s *goalService) SetTags(householdID, goalID uint, tagIDs []uint) (*model.Goal, error) {
	goal, err := s.Get(householdID, goalID)
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

	if err := s.db.Model(goal).Association("Tags").Replace(tags); err != nil {
		return nil, err
	}
	return s.Get(householdID, goalID)
}

func validGoalStatus(status model.GoalStatus) bool {
	switch status {
	case model.GoalActive, model.GoalPaused, model.GoalAchieved, model.GoalAbandoned:
		return true
	}
	return false
}
