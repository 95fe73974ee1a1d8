package model

import "time"

// Community is either the singleton global community (slug "all") or an
// academic community identified by (year, branch, division). The slug
// encodes the triple, so its unique index is what enforces uniqueness.
type Community struct {
	ID        uint64  `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Slug      string  `gorm:"uniqueIndex;size:64;not null"`
	Year      *int    `gorm:"index:idx_community_triple,priority:1"`
	Branch    *string `gorm:"size:16;index:idx_community_triple,priority:2"`
	Division  *string `gorm:"size:1;index:idx_community_triple,priority:3"`
	IsGlobal  bool    `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// GlobalSlug identifies the singleton community every user belongs to.
const GlobalSlug = "all"

type CommunityMember struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	CreatedAt   time.Time
}
