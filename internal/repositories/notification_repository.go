package repositories

import (
	"jobvibes_backend/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateLog(log *models.NotificationLog) error
	FindByReceiver(receiverID string, page, limit int) ([]models.NotificationLog, int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateLog(log *models.NotificationLog) error {
	return r.db.Create(log).Error
}

// FindByReceiver lists a user's delivered notifications newest-first with the
// sender preloaded for display.
func (r *NotificationRepositoryImpl) FindByReceiver(receiverID string, page, limit int) ([]models.NotificationLog, int64, error) {
	query := r.db.Model(&models.NotificationLog{}).
		Where("receiver_id = ? AND status = ?", receiverID, models.DispatchStatusSuccess)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.NotificationLog
	offset := (page - 1) * limit
	err := query.Preload("Poster").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
