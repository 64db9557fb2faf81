package service

import (
	"errors"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag name already in use")
)

type TagService interface {
	Create(householdID uint, name, color string) (*model.Tag, error)
	Get(householdID, id uint) (*model.Tag, error)
	List(householdID uint) ([]model.Tag, error)
	Update(householdID, id uint, name, color *string) (*model.Tag, error)
	Delete(householdID, id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) Create(householdID uint, name, color string) (*model.Tag, error) {
	existing, err := s.tagRepo.FindByName(householdID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTagAlreadyExists
	}

	tag := &model.Tag{
		HouseholdID: householdID,
		Name:        name,
		Color:       color,
	}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Get(householdID, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) List(householdID uint) ([]model.Tag, error) {
	return s.tagRepo.List(householdID)
}

func (s *tagService) Update(householdID, id uint, name, color *string) (*model.Tag, error) {
	tag, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	if name != nil && *name != tag.Name {
		existing, err := s.tagRepo.FindByName(householdID, *name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, ErrTagAlreadyExists
		}
		tag.Name = *name
	}
	if color != nil {
		tag.Color = *color
	}

	if err := s.tagRepo.Update(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(householdID, id uint) error {
	if _, err := s.Get(householdID, id); err != nil {
		return err
	}
	return s.tagRepo.Delete(householdID, id)
}
