package mysql

import (
	"context"

	"gorm.io/gorm"

	"campusanon/internal/model"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FeedItem is a post row joined with its derived like count.
type FeedItem struct {
	model.Post
	LikesCount int64
}

// Feed returns the most recent non-hidden posts of a community with like
// counts derived from the like table (no counter column to drift).
func (r *PostRepository) Feed(ctx context.Context, communityID uint64, limit int) ([]FeedItem, error) {
	var list []FeedItem
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select("posts.*, COUNT(post_likes.id) AS likes_count").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Where("posts.community_id = ? AND posts.hidden = ?", communityID, false).
		Group("posts.id").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Delete removes the post and its dependents; author checks live in the
// service layer.
func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

type CommentRepository struct {
	DB *gorm.DB
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns non-hidden comments oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Where("post_id = ? AND hidden = ?", postID, false).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
