package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusanon/internal/model"
	"campusanon/internal/pkg"
)

type commentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error)
}

type notifier interface {
	Create(ctx context.Context, n *model.Notification) error
}

type CommentService struct {
	repo          commentStore
	posts         postFinder
	users         userStore
	limiter       rateLimiter
	notifications notifier
	log           *zap.Logger
}

func NewCommentService(repo commentStore, posts postFinder, users userStore, limiter rateLimiter, notifications notifier, log *zap.Logger) *CommentService {
	return &CommentService{
		repo:          repo,
		posts:         posts,
		users:         users,
		limiter:       limiter,
		notifications: notifications,
		log:           log,
	}
}

func (s *CommentService) Create(ctx context.Context, authorID, postID uint64, content string) (*model.Comment, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.Banned {
		return nil, ErrUserBanned
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if err := s.limiter.Allow(ctx, authorID, ActionCreateComment); err != nil {
		return nil, err
	}

	alias, err := pkg.RandAlias()
	if err != nil {
		return nil, err
	}
	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Alias:    alias,
		Content:  content,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// best-effort fan-out; never to yourself
	if post.AuthorID != authorID {
		if err := s.notifications.Create(ctx, &model.Notification{
			UserID:  post.AuthorID,
			ActorID: authorID,
			Verb:    model.VerbComment,
		}); err != nil {
			s.log.Warn("comment notification failed", zap.Uint64("post_id", postID), zap.Error(err))
		}
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.repo.ListByPost(ctx, postID)
}
