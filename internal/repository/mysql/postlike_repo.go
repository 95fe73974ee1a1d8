package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusanon/internal/model"
)

type PostLikeRepository struct {
	DB *gorm.DB
}

// Toggle flips the (user, post) like row and returns the resulting state.
// The unique index resolves a concurrent double-like: the second insert
// hits DoNothing and reads back as already-liked.
func (r *PostLikeRepository) Toggle(ctx context.Context, userID, postID uint64) (liked bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&model.PostLike{UserID: userID, PostID: postID})
		if ins.Error != nil {
			return ins.Error
		}
		liked = true
		return nil
	})
	return liked, err
}

func (r *PostLikeRepository) Count(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
