package mysql

import (
	"context"

	"gorm.io/gorm"
)

type RateLimitRepository struct {
	DB *gorm.DB
}

// CheckAndRecord admits the event only if the windowed count is still
// under the limit. Check and insert are one conditional statement, so two
// concurrent callers cannot both slip past the limit.
func (r *RateLimitRepository) CheckAndRecord(ctx context.Context, userID uint64, action string, limit, windowSeconds int) (bool, error) {
	res := r.DB.WithContext(ctx).Exec(`
		INSERT INTO rate_limit_events (user_id, action, created_at)
		SELECT ?, ?, NOW() FROM DUAL
		WHERE (SELECT COUNT(*) FROM rate_limit_events e
		       WHERE e.user_id = ? AND e.action = ?
		         AND e.created_at >= NOW() - INTERVAL ? SECOND) < ?`,
		userID, action, userID, action, windowSeconds, limit,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
