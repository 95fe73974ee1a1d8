package model

import "time"

// Post carries both the real author (never exposed) and the random alias
// shown to other users. Alias is drawn fresh per item.
type Post struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index:idx_post_comm_time,priority:1"`
	AuthorID    uint64 `gorm:"not null;index"`
	Alias       string `gorm:"size:32;not null"`
	Content     string `gorm:"type:text;not null"`
	Hidden      bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"index:idx_post_comm_time,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	Alias     string `gorm:"size:32;not null"`
	Content   string `gorm:"type:text;not null"`
	Hidden    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
