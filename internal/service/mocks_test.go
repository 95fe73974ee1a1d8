package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"campusanon/internal/model"
	"campusanon/internal/repository/mysql"
)

// In-memory doubles for the repository interfaces. Each mirrors the
// database-backed behavior the services rely on, including
// gorm.ErrRecordNotFound on misses.

type memOTPStore struct {
	nextID  uint64
	byEmail map[string]*model.EmailOTP
	deleted []uint64
}

func newMemOTPStore() *memOTPStore {
	return &memOTPStore{nextID: 1, byEmail: make(map[string]*model.EmailOTP)}
}

func (s *memOTPStore) Upsert(ctx context.Context, email, code string, expiresAt time.Time) error {
	if rec, ok := s.byEmail[email]; ok {
		rec.Code = code
		rec.ExpiresAt = expiresAt
		rec.Attempts = 0
		return nil
	}
	s.byEmail[email] = &model.EmailOTP{ID: s.nextID, Email: email, Code: code, ExpiresAt: expiresAt}
	s.nextID++
	return nil
}

func (s *memOTPStore) Find(ctx context.Context, email string) (*model.EmailOTP, error) {
	rec, ok := s.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *memOTPStore) IncrementAttempts(ctx context.Context, id uint64) error {
	for _, rec := range s.byEmail {
		if rec.ID == id {
			rec.Attempts++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *memOTPStore) Delete(ctx context.Context, id uint64) error {
	for email, rec := range s.byEmail {
		if rec.ID == id {
			delete(s.byEmail, email)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return nil
}

type memUserStore struct {
	nextID      uint64
	byHash      map[string]*model.User
	byID        map[uint64]*model.User
	memberships map[uint64][]uint64 // userID -> community IDs
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		nextID:      1,
		byHash:      make(map[string]*model.User),
		byID:        make(map[uint64]*model.User),
		memberships: make(map[uint64][]uint64),
	}
}

func (s *memUserStore) add(u *model.User) *model.User {
	if u.ID == 0 {
		u.ID = s.nextID
		s.nextID++
	}
	s.byHash[u.EmailHash] = u
	s.byID[u.ID] = u
	return u
}

func (s *memUserStore) FindByEmailHash(ctx context.Context, hash string) (*model.User, error) {
	u, ok := s.byHash[hash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *memUserStore) CreateWithMemberships(ctx context.Context, user *model.User, communityID, globalID uint64) error {
	s.add(user)
	s.memberships[user.ID] = []uint64{communityID, globalID}
	return nil
}

type memCommunityStore struct {
	communities []*model.Community
	global      *model.Community
}

func (s *memCommunityStore) FindExact(ctx context.Context, year int, branch, division string) (*model.Community, error) {
	for _, cm := range s.communities {
		if cm.Year == nil || *cm.Year != year || cm.Branch == nil || *cm.Branch != branch {
			continue
		}
		if division == "" {
			if cm.Division == nil {
				return cm, nil
			}
			continue
		}
		if cm.Division != nil && *cm.Division == division {
			return cm, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memCommunityStore) EnsureGlobal(ctx context.Context) (*model.Community, error) {
	if s.global == nil {
		s.global = &model.Community{ID: 1000, Name: "All", Slug: model.GlobalSlug, IsGlobal: true}
	}
	return s.global, nil
}

func (s *memCommunityStore) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	if s.global != nil && s.global.ID == id {
		return s.global, nil
	}
	for _, cm := range s.communities {
		if cm.ID == id {
			return cm, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memMemberStore struct {
	joins []model.CommunityMember
}

func (s *memMemberStore) Join(ctx context.Context, member *model.CommunityMember) error {
	for _, j := range s.joins {
		if j.CommunityID == member.CommunityID && j.UserID == member.UserID {
			return nil
		}
	}
	s.joins = append(s.joins, *member)
	return nil
}

type memNotificationStore struct {
	created []model.Notification
	cleared []uint64
	failErr error
}

func (s *memNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.created = append(s.created, *n)
	return nil
}

func (s *memNotificationStore) ClearForUser(ctx context.Context, userID uint64) error {
	if s.failErr != nil {
		return s.failErr
	}
	s.cleared = append(s.cleared, userID)
	return nil
}

type memSessionStore struct {
	tokens  map[uint64]string
	deleted []uint64
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{tokens: make(map[uint64]string)}
}

func (s *memSessionStore) SaveToken(ctx context.Context, userID uint64, token string) error {
	s.tokens[userID] = token
	return nil
}

func (s *memSessionStore) DeleteToken(ctx context.Context, userID uint64) error {
	delete(s.tokens, userID)
	s.deleted = append(s.deleted, userID)
	return nil
}

type memMailer struct {
	sent []string // recipient addresses in order
}

func (m *memMailer) Enqueue(to, subject, html string) {
	m.sent = append(m.sent, to)
}

// memReportStore mirrors the transactional report path: distinct
// reporters per item, duplicate detection, threshold hide.
type memReportStore struct {
	threshold int
	reporters map[string]map[uint64]bool // item key -> reporter set
	hidden    map[string]bool
	bans      map[uint64]bool
	events    []string
}

func newMemReportStore() *memReportStore {
	return &memReportStore{
		threshold: ReportThreshold,
		reporters: make(map[string]map[uint64]bool),
		hidden:    make(map[string]bool),
		bans:      make(map[uint64]bool),
	}
}

func (s *memReportStore) key(kind model.ContentKind, itemID uint64) string {
	return fmt.Sprintf("%s:%d", kind, itemID)
}

func (s *memReportStore) Report(ctx context.Context, kind model.ContentKind, itemID, reporterID uint64, reason string, threshold int) (mysql.ReportOutcome, error) {
	k := s.key(kind, itemID)
	set, ok := s.reporters[k]
	if !ok {
		set = make(map[uint64]bool)
		s.reporters[k] = set
	}
	created := !set[reporterID]
	set[reporterID] = true
	count := int64(len(set))
	if created && !s.hidden[k] && count >= int64(threshold) {
		s.hidden[k] = true
		s.events = append(s.events, model.EventAutoHide)
	}
	return mysql.ReportOutcome{Created: created, Count: count, Hidden: s.hidden[k]}, nil
}

func (s *memReportStore) HideOverride(ctx context.Context, kind model.ContentKind, itemID, adminID uint64, hidden bool) error {
	s.hidden[s.key(kind, itemID)] = hidden
	s.events = append(s.events, model.EventAdminUnhide)
	return nil
}

func (s *memReportStore) BanOverride(ctx context.Context, userID, adminID uint64, banned bool) error {
	s.bans[userID] = banned
	if banned {
		s.events = append(s.events, model.EventAdminBan)
	} else {
		s.events = append(s.events, model.EventAdminUnban)
	}
	return nil
}

type memPostStore struct {
	nextID uint64
	posts  map[uint64]*model.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{nextID: 1, posts: make(map[uint64]*model.Post)}
}

func (s *memPostStore) add(p *model.Post) *model.Post {
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	}
	s.posts[p.ID] = p
	return p
}

func (s *memPostStore) Create(ctx context.Context, post *model.Post) error {
	post.CreatedAt = time.Now()
	s.add(post)
	return nil
}

func (s *memPostStore) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *memPostStore) Feed(ctx context.Context, communityID uint64, limit int) ([]mysql.FeedItem, error) {
	var items []mysql.FeedItem
	for _, p := range s.posts {
		if p.CommunityID == communityID && !p.Hidden {
			items = append(items, mysql.FeedItem{Post: *p})
		}
		if len(items) == limit {
			break
		}
	}
	return items, nil
}

func (s *memPostStore) Delete(ctx context.Context, id uint64) error {
	delete(s.posts, id)
	return nil
}

type memCommentStore struct {
	nextID   uint64
	comments map[uint64]*model.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{nextID: 1, comments: make(map[uint64]*model.Comment)}
}

func (s *memCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = s.nextID
	s.nextID++
	comment.CreatedAt = time.Now()
	s.comments[comment.ID] = comment
	return nil
}

func (s *memCommentStore) FindByID(ctx context.Context, id uint64) (*model.Comment, error) {
	cm, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cm, nil
}

func (s *memCommentStore) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	for _, cm := range s.comments {
		if cm.PostID == postID && !cm.Hidden {
			list = append(list, *cm)
		}
	}
	return list, nil
}

type memLikeStore struct {
	likes map[uint64]map[uint64]bool // postID -> userID set
}

func newMemLikeStore() *memLikeStore {
	return &memLikeStore{likes: make(map[uint64]map[uint64]bool)}
}

func (s *memLikeStore) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	set, ok := s.likes[postID]
	if !ok {
		set = make(map[uint64]bool)
		s.likes[postID] = set
	}
	if set[userID] {
		delete(set, userID)
		return false, nil
	}
	set[userID] = true
	return true, nil
}

func (s *memLikeStore) Count(ctx context.Context, postID uint64) (int64, error) {
	return int64(len(s.likes[postID])), nil
}

// stubLimiter scripts the rate-limit answer.
type stubLimiter struct {
	err   error
	calls []string
}

func (l *stubLimiter) Allow(ctx context.Context, userID uint64, action string) error {
	l.calls = append(l.calls, action)
	return l.err
}

type memRateLimitStore struct {
	allowed bool
	calls   int
}

func (s *memRateLimitStore) CheckAndRecord(ctx context.Context, userID uint64, action string, limit, windowSeconds int) (bool, error) {
	s.calls++
	return s.allowed, nil
}
