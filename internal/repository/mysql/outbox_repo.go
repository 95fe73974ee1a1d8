package mysql

import (
	"context"

	"gorm.io/gorm"

	"campusanon/internal/model"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending returns unsent moderation events oldest first.
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.ModerationEvent, error) {
	var list []model.ModerationEvent
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationEvent{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}
