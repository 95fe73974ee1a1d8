package service

import (
	"context"
	"strings"

	"campusanon/internal/model"
)

const searchLimit = 20

type communityLister interface {
	ListForUser(ctx context.Context, userID uint64) ([]model.Community, error)
}

type communitySearcher interface {
	SearchByName(ctx context.Context, q string, limit int) ([]model.Community, error)
}

type CommunityService struct {
	communities communitySearcher
	members     communityLister
}

func NewCommunityService(communities communitySearcher, members communityLister) *CommunityService {
	return &CommunityService{communities: communities, members: members}
}

// Mine lists the communities the user belongs to, global included.
func (s *CommunityService) Mine(ctx context.Context, userID uint64) ([]model.Community, error) {
	return s.members.ListForUser(ctx, userID)
}

func (s *CommunityService) Search(ctx context.Context, q string) ([]model.Community, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrQueryRequired
	}
	return s.communities.SearchByName(ctx, q, searchLimit)
}
