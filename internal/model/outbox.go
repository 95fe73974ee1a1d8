package model

import "time"

const (
	EventAutoHide    = "auto_hide"
	EventAdminUnhide = "admin_unhide"
	EventAdminBan    = "admin_ban"
	EventAdminUnban  = "admin_unban"
)

// ModerationEvent is the transactional outbox for moderation actions.
// Rows are written in the same transaction as the action and relayed to
// Kafka by a background drainer.
type ModerationEvent struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"`
	ItemType  string `gorm:"size:10"` // empty for user-level events
	ItemID    uint64 `gorm:"not null"`
	ActorID   uint64 `gorm:"not null"` // 0 for system (auto-hide)
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0"` // 0=pending, 1=sent, 2=failed
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ModerationEvent) TableName() string { return "moderation_outbox" }
