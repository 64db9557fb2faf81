package repository

import (
	"errors"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *model.Notification) error
	FindByID(userID, id uint) (*model.Notification, error)
	List(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, id uint) error
	MarkAllRead(userID uint) error
	Delete(userID, id uint) error

	// ExistsForDay reports whether the user already has a notification of
	// the given type linked to the same entity, created on the given day.
	// The scheduler uses it to avoid duplicate reminders.
	ExistsForDay(userID uint, nType model.NotificationType, linkType model.NotificationLinkType, linkID uint, day time.Time) (bool, error)

	GetPreferences(userID uint) (*model.NotificationPreferences, error)
	SavePreferences(prefs *model.NotificationPreferences) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) FindByID(userID, id uint) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.Where("user_id = ?", userID).First(&notification, id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) List(userID uint, unreadOnly bool, limit, offset int) ([]model.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var notifications []model.Notification
	err := query.Order("created_at DESC, id DESC").Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(userID, id uint) error {
	now := time.Now()
	result := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND id = ?", userID, id).
		Updates(map[string]interface{}{"read": true, "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID uint) error {
	now := time.Now()
	return r.db.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}

func (r *notificationRepository) Delete(userID, id uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.Notification{}, id).Error
}

func (r *notificationRepository) ExistsForDay(userID uint, nType model.NotificationType, linkType model.NotificationLinkType, linkID uint, day time.Time) (bool, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("user_id = ? AND type = ? AND link_type = ? AND link_id = ?", userID, nType, linkType, linkID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetPreferences returns the user's row, creating the default (all types
// enabled, expressed as an empty list) on first access.
func (r *notificationRepository) GetPreferences(userID uint) (*model.NotificationPreferences, error) {
	var prefs model.NotificationPreferences
	err := r.db.Where("user_id = ?", userID).First(&prefs).Error
	if err == nil {
		return &prefs, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefs = model.NotificationPreferences{UserID: userID}
	if err := r.db.Create(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *notificationRepository) SavePreferences(prefs *model.NotificationPreferences) error {
	return r.db.Save(prefs).Error
}
