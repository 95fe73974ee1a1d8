package model

import "time"

// RateLimitEvent is an append-only log; throttling is a windowed count
// over it, so there is no counter column to drift.
type RateLimitEvent struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_rl_window,priority:1"`
	Action    string    `gorm:"size:32;not null;index:idx_rl_window,priority:2"`
	CreatedAt time.Time `gorm:"index:idx_rl_window,priority:3"`
}

func (RateLimitEvent) TableName() string { return "rate_limit_events" }
