package service

import "context"

const (
	ActionCreatePost    = "post_create"
	ActionCreateComment = "comment_create"
	ActionReport        = "report"
)

type rateLimitRule struct {
	limit         int
	windowSeconds int
}

var rateLimitRules = map[string]rateLimitRule{
	ActionCreatePost:    {limit: 5, windowSeconds: 60},
	ActionCreateComment: {limit: 10, windowSeconds: 60},
	ActionReport:        {limit: 10, windowSeconds: 300},
}

type rateLimitStore interface {
	CheckAndRecord(ctx context.Context, userID uint64, action string, limit, windowSeconds int) (bool, error)
}

// RateLimitService gates write actions on a sliding-window count per
// (user, action). The store makes check-and-record one atomic statement.
type RateLimitService struct {
	repo rateLimitStore
}

func NewRateLimitService(repo rateLimitStore) *RateLimitService {
	return &RateLimitService{repo: repo}
}

// Allow records the event if the caller is under the limit, otherwise
// returns ErrRateLimited. Unknown actions are never limited.
func (s *RateLimitService) Allow(ctx context.Context, userID uint64, action string) error {
	rule, ok := rateLimitRules[action]
	if !ok {
		return nil
	}
	allowed, err := s.repo.CheckAndRecord(ctx, userID, action, rule.limit, rule.windowSeconds)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRateLimited
	}
	return nil
}
