package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"campusanon/internal/model"
	"campusanon/internal/pkg"
	"campusanon/internal/repository/mysql"
)

// FeedLimit caps the community feed at the most recent posts.
const FeedLimit = 50

type postStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
	Feed(ctx context.Context, communityID uint64, limit int) ([]mysql.FeedItem, error)
	Delete(ctx context.Context, id uint64) error
}

type communityFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Community, error)
}

type rateLimiter interface {
	Allow(ctx context.Context, userID uint64, action string) error
}

type PostService struct {
	repo        postStore
	communities communityFinder
	users       userStore
	limiter     rateLimiter
}

func NewPostService(repo postStore, communities communityFinder, users userStore, limiter rateLimiter) *PostService {
	return &PostService{
		repo:        repo,
		communities: communities,
		users:       users,
		limiter:     limiter,
	}
}

// Create writes a post under a fresh random alias; the author's identity
// stays on the row but is never exposed by any read path.
func (s *PostService) Create(ctx context.Context, authorID, communityID uint64, content string) (*model.Post, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author.Banned {
		return nil, ErrUserBanned
	}
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	if err := s.limiter.Allow(ctx, authorID, ActionCreatePost); err != nil {
		return nil, err
	}

	alias, err := pkg.RandAlias()
	if err != nil {
		return nil, err
	}
	post := &model.Post{
		CommunityID: communityID,
		AuthorID:    authorID,
		Alias:       alias,
		Content:     content,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Feed(ctx context.Context, communityID uint64) ([]mysql.FeedItem, error) {
	if _, err := s.communities.FindByID(ctx, communityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	return s.repo.Feed(ctx, communityID, FeedLimit)
}

// Delete is author-only; admins go through moderation overrides instead.
func (s *PostService) Delete(ctx context.Context, userID, postID uint64) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}
	return s.repo.Delete(ctx, postID)
}
