package model

import "time"

const (
	RoleMember = 0
	RoleAdmin  = 1
)

// User is keyed publicly by ID; the email itself is never stored,
// only its SHA-256 digest. Username is the generated internal handle.
type User struct {
	ID        uint64 `gorm:"primaryKey"`
	EmailHash string `gorm:"uniqueIndex;size:64;not null"`
	Username  string `gorm:"uniqueIndex;size:32;not null"`
	Year      int    `gorm:"not null"`
	Branch    string `gorm:"size:16;not null"`
	Role      int    `gorm:"not null;default:0"` // 0=member, 1=admin
	Banned    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
