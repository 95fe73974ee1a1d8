package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusanon/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) FindByEmailHash(ctx context.Context, hash string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email_hash = ?", hash).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithMemberships creates the user row plus its academic and global
// memberships in one transaction, so a failed registration leaves no
// partial state.
func (r *UserRepository) CreateWithMemberships(ctx context.Context, user *model.User, communityID, globalID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		members := []model.CommunityMember{
			{CommunityID: communityID, UserID: user.ID},
		}
		if globalID != communityID {
			members = append(members, model.CommunityMember{CommunityID: globalID, UserID: user.ID})
		}
		// idempotent against a concurrent duplicate join
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&members).Error
	})
}
