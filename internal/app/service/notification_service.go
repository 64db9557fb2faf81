package service

import (
	"errors"

	"github.com/lib/pq"
	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/lifeboard/lifeboard-backend/internal/app/repository"
	"github.com/lifeboard/lifeboard-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidLink          = errors.New("invalid notification link")
	ErrInvalidNotifType     = errors.New("invalid notification type")
)

type NotifyInput struct {
	Type     model.NotificationType
	Title    string
	Body     string
	LinkType *model.NotificationLinkType
	LinkID   *uint
}

type NotificationService interface {
	// Notify appends a notification for the user, honoring their type
	// preferences. Returns nil, nil when the type is switched off.
	Notify(householdID, userID uint, input NotifyInput) (*model.Notification, error)
	List(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, id uint) error
	MarkAllRead(userID uint) error
	Delete(userID, id uint) error

	GetPreferences(userID uint) (*model.NotificationPreferences, error)
	UpdatePreferences(userID uint, enabledTypes []string) (*model.NotificationPreferences, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(householdID, userID uint, input NotifyInput) (*model.Notification, error) {
	if !model.ValidNotificationType(input.Type) {
		return nil, ErrInvalidNotifType
	}
	// Link is a pair: both halves or neither, and the kind must be known.
	if (input.LinkType == nil) != (input.LinkID == nil) {
		return nil, ErrInvalidLink
	}
	if input.LinkType != nil && !model.ValidLinkType(*input.LinkType) {
		return nil, ErrInvalidLink
	}

	prefs, err := s.notificationRepo.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	if !prefs.TypeEnabled(input.Type) {
		logger.Debug("Notification suppressed by preferences", map[string]interface{}{
			"user_id": userID,
			"type":    input.Type,
		})
		return nil, nil
	}

	notification := &model.Notification{
		HouseholdID: householdID,
		UserID:      userID,
		Type:        input.Type,
		Title:       input.Title,
		Body:        input.Body,
		LinkType:    input.LinkType,
		LinkID:      input.LinkID,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) List(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notificationRepo.List(userID, unreadOnly, limit, offset)
}

func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(userID)
}

func (s *notificationService) MarkRead(userID, id uint) error {
	err := s.notificationRepo.MarkRead(userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.notificationRepo.MarkAllRead(userID)
}

func (s *notificationService) Delete(userID, id uint) error {
	if _, err := s.notificationRepo.FindByID(userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return s.notificationRepo.Delete(userID, id)
}

func (s *notificationService) GetPreferences(userID uint) (*model.NotificationPreferences, error) {
	return s.notificationRepo.GetPreferences(userID)
}

func (s *notificationService) UpdatePreferences(userID uint, enabledTypes []string) (*model.NotificationPreferences, error) {
	for _, t := range enabledTypes {
		if !model.ValidNotificationType(model.NotificationType(t)) {
			return nil, ErrInvalidNotifType
		}
	}

	prefs, err := s.notificationRepo.GetPreferences(userID)
	if err != nil {
		return nil, err
	}

	prefs.EnabledTypes = pq.StringArray(enabledTypes)
	if err := s.notificationRepo.SavePreferences(prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
