package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusanon/internal/model"
)

type postLikeStore interface {
	Toggle(ctx context.Context, userID, postID uint64) (bool, error)
	Count(ctx context.Context, postID uint64) (int64, error)
}

type PostLikeService struct {
	repo          postLikeStore
	posts         postFinder
	users         userStore
	notifications notifier
	log           *zap.Logger
}

func NewPostLikeService(repo postLikeStore, posts postFinder, users userStore, notifications notifier, log *zap.Logger) *PostLikeService {
	return &PostLikeService{
		repo:          repo,
		posts:         posts,
		users:         users,
		notifications: notifications,
		log:           log,
	}
}

// Toggle flips the like state and returns the new state with the derived
// count. Two toggles land back exactly where the caller started.
func (s *PostLikeService) Toggle(ctx context.Context, userID, postID uint64) (liked bool, count int64, err error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	if user.Banned {
		return false, 0, ErrUserBanned
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrPostNotFound
		}
		return false, 0, err
	}

	liked, err = s.repo.Toggle(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}
	count, err = s.repo.Count(ctx, postID)
	if err != nil {
		return false, 0, err
	}

	if liked && post.AuthorID != userID {
		if err := s.notifications.Create(ctx, &model.Notification{
			UserID:  post.AuthorID,
			ActorID: userID,
			Verb:    model.VerbLike,
		}); err != nil {
			s.log.Warn("like notification failed", zap.Uint64("post_id", postID), zap.Error(err))
		}
	}
	return liked, count, nil
}
