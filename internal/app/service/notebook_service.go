package service

import (
	"errors"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrNotebookNotFound = errors.New("notebook not found")
	ErrPageNotFound     = errors.New("notebook page not found")
)

type NotebookService interface {
	Create(householdID, userID uint, title string) (*model.Notebook, error)
	Get(householdID, id uint) (*model.Notebook, error)
	List(householdID uint) ([]model.Notebook, error)
	Rename(householdID, id uint, title string) (*model.Notebook, error)
	Delete(householdID, id uint) error

	AddPage(householdID, notebookID uint, title, body string) (*model.NotebookPage, error)
	UpdatePage(householdID, notebookID, pageID uint, title, body *string, position *int) (*model.NotebookPage, error)
	DeletePage(householdID, notebookID, pageID uint) error
}

type notebookService struct {
	notebookRepo repository.NotebookRepository
}

func NewNotebookService(notebookRepo repository.NotebookRepository) NotebookService {
	return &notebookService{notebookRepo: notebookRepo}
}

func (s *notebookService) Create(householdID, userID uint, title string) (*model.Notebook, error) {
	notebook := &model.Notebook{
		HouseholdID: householdID,
		UserID:      userID,
		Title:       title,
	}
	if err := s.notebookRepo.Create(notebook); err != nil {
		return nil, err
	}
	return notebook, nil
}

func (s *notebookService) Get(householdID, id uint) (*model.Notebook, error) {
	notebook, err := s.notebookRepo.FindByID(householdID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotebookNotFound
		}
		return nil, err
	}
	return notebook, nil
}

func (s *notebookService) List(householdID uint) ([]model.Notebook, error) {
	return s.notebookRepo.List(householdID)
}

func (s *notebookService) Rename(householdID, id uint, title string) (*model.Notebook, error) {
	notebook, err := s.Get(householdID, id)
	if err != nil {
		return nil, err
	}

	notebook.Title = title
	if err := s.notebookRepo.Update(notebook); err != nil {
		return nil, err
	}
	return notebook, nil
}

func (s *notebookService) Delete(householdID, id uint) error {
	if _, err := s.Get(householdID, id); err != nil {
		return err
	}
	return s.notebookRepo.Delete(householdID, id)
}

func (s *notebookService) AddPage(householdID, notebookID uint, title, body string) (*model.NotebookPage, error) {
	notebook, err := s.Get(householdID, notebookID)
	if err != nil {
		return nil, err
	}

	page := &model.NotebookPage{
		NotebookID: notebook.ID,
		Title:      title,
		Body:       body,
		Position:   len(notebook.Pages),
	}
	if err := s.notebookRepo.CreatePage(page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *notebookService) UpdatePage(householdID, notebookID, pageID uint, title, body *string, position *int) (*model.NotebookPage, error) {
	if _, err := s.Get(householdID, notebookID); err != nil {
		return nil, err
	}

	page, err := s.notebookRepo.FindPageByID(notebookID, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if title != nil {
		page.Title = *title
	}
	if body != nil {
		page.Body = *body
	}
	if position != nil {
		page.Position = *position
	}
	if err := s.notebookRepo.UpdatePage(page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *notebookService) DeletePage(householdID, notebookID, pageID uint) error {
	if _, err := s.Get(householdID, notebookID); err != nil {
		return err
	}
	if _, err := s.notebookRepo.FindPageByID(notebookID, pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}
	return s.notebookRepo.DeletePage(notebookID, pageID)
}
