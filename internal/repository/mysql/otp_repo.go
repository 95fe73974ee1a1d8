package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusanon/internal/model"
)

type OTPRepository struct {
	DB *gorm.DB
}

// Upsert replaces any prior code for the email: new code, fresh expiry,
// attempts back to zero. The unique index on email makes this a single
// INSERT ... ON DUPLICATE KEY UPDATE.
func (r *OTPRepository) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	rec := model.EmailOTP{
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		Attempts:  0,
	}
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "attempts"}),
	}).Create(&rec).Error
}

func (r *OTPRepository) Find(ctx context.Context, email string) (*model.EmailOTP, error) {
	var rec model.EmailOTP
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *OTPRepository) IncrementAttempts(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EmailOTP{}).
		Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

func (r *OTPRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Delete(&model.EmailOTP{}, id).Error
}
