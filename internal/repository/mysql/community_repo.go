package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusanon/internal/model"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// FindExact resolves an academic community by its (year, branch, division)
// triple. Division may be empty (no-division communities).
func (r *CommunityRepository) FindExact(ctx context.Context, year int, branch, division string) (*model.Community, error) {
	q := r.DB.WithContext(ctx).
		Where("is_global = ? AND year = ? AND branch = ?", false, year, branch)
	if division == "" {
		q = q.Where("division IS NULL")
	} else {
		q = q.Where("division = ?", division)
	}
	var community model.Community
	if err := q.First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	if err := r.DB.WithContext(ctx).First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// EnsureGlobal get-or-creates the singleton global community. The unique
// slug resolves a concurrent duplicate create.
func (r *CommunityRepository) EnsureGlobal(ctx context.Context) (*model.Community, error) {
	rec := model.Community{
		Name:     "All",
		Slug:     model.GlobalSlug,
		IsGlobal: true,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&rec).Error
	if err != nil {
		return nil, err
	}
	// re-read: DoNothing does not fill ID on conflict
	var community model.Community
	if err := r.DB.WithContext(ctx).Where("slug = ?", model.GlobalSlug).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// SearchByName is a plain substring match, capped by limit.
func (r *CommunityRepository) SearchByName(ctx context.Context, q string, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).
		Where("name LIKE ?", "%"+q+"%").
		Order("name ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join is idempotent: a duplicate (community_id, user_id) is not an error.
func (r *CommunityMemberRepository) Join(ctx context.Context, member *model.CommunityMember) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

// ListForUser returns the communities the user belongs to.
func (r *CommunityMemberRepository) ListForUser(ctx context.Context, userID uint64) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).Model(&model.Community{}).
		Joins("JOIN community_members m ON m.community_id = communities.id").
		Where("m.user_id = ?", userID).
		Order("communities.id ASC").
		Find(&list).Error
	return list, err
}
