package mysql

import (
	"context"

	"gorm.io/gorm"

	"campusanon/internal/model"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ClearForUser wipes everything for the recipient; runs on each login.
func (r *NotificationRepository) ClearForUser(ctx context.Context, userID uint64) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Notification{}).Error
}
