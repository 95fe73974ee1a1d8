package model

import "time"

// PostLike models the toggle: presence of the row means liked. The count
// is always derived by counting rows, never kept as a column.
type PostLike struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_user_post"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_post"`
	CreatedAt time.Time
}

func (PostLike) TableName() string { return "post_likes" }
