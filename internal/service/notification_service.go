package service

import (
	"context"

	"campusanon/internal/model"
)

type notificationLister interface {
	ListForUser(ctx context.Context, userID uint64, limit int) ([]model.Notification, error)
}

const notificationListLimit = 50

type NotificationService struct {
	repo notificationLister
}

func NewNotificationService(repo notificationLister) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) List(ctx context.Context, userID uint64) ([]model.Notification, error) {
	return s.repo.ListForUser(ctx, userID, notificationListLimit)
}
