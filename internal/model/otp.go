package model

import "time"

// EmailOTP holds at most one live code per email; issuing a new code
// replaces the row. Deleted on success, on exhaustion, or lazily on a
// failed check after expiry.
type EmailOTP struct {
	ID        uint64    `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:128;not null"`
	Code      string    `gorm:"size:6;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Attempts  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EmailOTP) TableName() string { return "email_otps" }

func (o *EmailOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
