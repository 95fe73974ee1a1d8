package model

import "time"

const (
	VerbComment = "comment"
	VerbLike    = "like"
)

// Notification rows are wholesale-deleted for the recipient on each
// successful login.
type Notification struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index"` // recipient
	ActorID   uint64 `gorm:"not null"`
	Verb      string `gorm:"size:20;not null"`
	IsRead    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}
