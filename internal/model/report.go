package model

import "time"

// ContentKind parameterizes moderation over posts and comments.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

// Report is unique per (item, reporter); the second report from the same
// user hits the constraint and is treated as "already reported".
type Report struct {
	ID         uint64      `gorm:"primaryKey"`
	ItemType   ContentKind `gorm:"size:10;not null;uniqueIndex:uk_item_reporter,priority:1"`
	ItemID     uint64      `gorm:"not null;index;uniqueIndex:uk_item_reporter,priority:2"`
	ReporterID uint64      `gorm:"not null;uniqueIndex:uk_item_reporter,priority:3"`
	Reason     string      `gorm:"size:200;not null"`
	CreatedAt  time.Time
}

func (Report) TableName() string { return "reports" }
